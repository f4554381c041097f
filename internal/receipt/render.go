package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

var (
	ErrMissingLoan   = errors.New("receipt document requires a loan")
	ErrRenderFailure = errors.New("failed to render receipt document")
)

const (
	pageLeftMargin = 15.0
	lineHeight     = 6.0
	timeLayout     = "2006-01-02 15:04"
)

// Data carries everything a receipt document shows.
type Data struct {
	Receipt *model.Receipt
	Loan    *model.KeyLoan
	Keys    []*model.Key
}

// Renderer produces the loan and return documents handed to borrowers.
// Layout is fixed A4 portrait; variants differ in heading and the
// return-specific rows.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the PDF for the given receipt and returns its bytes.
func (r *Renderer) Render(data Data) ([]byte, error) {
	if data.Loan == nil {
		return nil, ErrMissingLoan
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageLeftMargin, 20, pageLeftMargin)
	pdf.AddPage()

	writeHeading(pdf, data)
	writeBorrower(pdf, data.Loan)
	writeLoanDetails(pdf, data)
	writeKeyTable(pdf, data.Keys)
	writeSignatureLine(pdf)

	var buf bytes.Buffer

	err := pdf.Output(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailure, err)
	}

	return buf.Bytes(), nil
}

func writeHeading(pdf *fpdf.Fpdf, data Data) {
	title := "Key loan receipt"
	if data.Receipt.ReceiptType == model.ReceiptTypeReturn {
		title = "Key return receipt"
	}

	subtitle := "Tenant loan"
	if data.Loan.LoanType == model.LoanTypeMaintenance {
		subtitle = "Maintenance loan"
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, lineHeight, subtitle)
	pdf.Ln(12)
}

func writeBorrower(pdf *fpdf.Fpdf, loan *model.KeyLoan) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, lineHeight, "Borrower")
	pdf.Ln(lineHeight)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, lineHeight, loan.Contact)
	pdf.Ln(lineHeight)

	if ptr.IsValidStrPtr(loan.Contact2) {
		pdf.Cell(0, lineHeight, *loan.Contact2)
		pdf.Ln(lineHeight)
	}

	if loan.LoanType == model.LoanTypeMaintenance && ptr.IsValidStrPtr(loan.ContactPerson) {
		pdf.Cell(0, lineHeight, "Contact person: "+*loan.ContactPerson)
		pdf.Ln(lineHeight)
	}

	pdf.Ln(4)
}

func writeLoanDetails(pdf *fpdf.Fpdf, data Data) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, lineHeight, "Loan details")
	pdf.Ln(lineHeight)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, lineHeight, "Loaned at: "+data.Loan.LoanedAt.Format(timeLayout))
	pdf.Ln(lineHeight)

	if data.Receipt.ReceiptType == model.ReceiptTypeReturn && data.Loan.ReturnedAt != nil {
		pdf.Cell(0, lineHeight, "Returned at: "+data.Loan.ReturnedAt.Format(timeLayout))
		pdf.Ln(lineHeight)

		if data.Loan.AvailableToNextTenantFrom != nil {
			pdf.Cell(0, lineHeight,
				"Available to next tenant from: "+data.Loan.AvailableToNextTenantFrom.Format("2006-01-02"))
			pdf.Ln(lineHeight)
		}
	}

	if ptr.IsValidStrPtr(data.Loan.Description) {
		pdf.Cell(0, lineHeight, "Description: "+*data.Loan.Description)
		pdf.Ln(lineHeight)
	}

	pdf.Ln(4)
}

func writeKeyTable(pdf *fpdf.Fpdf, keys []*model.Key) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, lineHeight, fmt.Sprintf("Keys (%d)", len(keys)))
	pdf.Ln(lineHeight)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, lineHeight, "Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, lineHeight, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, lineHeight, "Sequence", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, lineHeight, "Flex", "1", 0, "R", false, 0, "")
	pdf.Ln(lineHeight)

	pdf.SetFont("Helvetica", "", 10)

	for _, key := range keys {
		pdf.CellFormat(70, lineHeight, key.KeyName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, lineHeight, string(key.KeyType), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, lineHeight, fmt.Sprintf("%d", key.KeySequenceNumber), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, lineHeight, fmt.Sprintf("%d", key.FlexNumber), "1", 0, "R", false, 0, "")
		pdf.Ln(lineHeight)
	}

	pdf.Ln(10)
}

func writeSignatureLine(pdf *fpdf.Fpdf) {
	y := pdf.GetY() + 14

	pdf.Line(pageLeftMargin, y, pageLeftMargin+80, y)
	pdf.SetY(y + 2)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(80, lineHeight, "Signature")
	pdf.Cell(0, lineHeight, "Date: "+time.Now().Format("2006-01-02"))
}
