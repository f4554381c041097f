package manager

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/receipt"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/storage"
)

const pdfContentType = "application/pdf"

type ReceiptSearchFilter struct {
	KeyLoanID   *uuid.UUID
	ReceiptType model.ReceiptType
}

type ReceiptManager struct {
	repo     repo.Repo
	store    storage.ObjectStore
	renderer *receipt.Renderer
	activity *ActivityManager
}

func NewReceiptManager(
	repository repo.Repo,
	store storage.ObjectStore,
	renderer *receipt.Renderer,
	activity *ActivityManager,
) *ReceiptManager {
	return &ReceiptManager{
		repo:     repository,
		store:    store,
		renderer: renderer,
		activity: activity,
	}
}

func (m *ReceiptManager) ListReceipts(
	ctx context.Context,
	filter ReceiptSearchFilter,
	pagination repo.Pagination,
) ([]*model.Receipt, int, error) {
	if filter.ReceiptType != "" && !filter.ReceiptType.Valid() {
		return nil, 0, ErrInvalidReceiptType
	}

	var conds []repo.Condition

	if filter.KeyLoanID != nil {
		conds = append(conds, repo.Eq(repo.KeyLoanIDField, *filter.KeyLoanID))
	}

	if filter.ReceiptType != "" {
		conds = append(conds, repo.Eq(repo.ReceiptTypeField, filter.ReceiptType))
	}

	query := pagination.Apply(repo.NewQuery().Where(conds...)).
		Order(repo.OrderField{Field: repo.CreatedField, Direction: repo.Desc})

	var receipts []*model.Receipt

	count, err := m.repo.List(ctx, model.Receipt{}, &receipts, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListReceiptsDB, err)
	}

	return receipts, count, nil
}

// CreateReceipt renders the loan or return document for a loan, stores it
// and records the receipt. A RETURN receipt requires the loan to have been
// returned. The document lands in storage before the row is written; the
// purge task sweeps documents whose row never materializes.
func (m *ReceiptManager) CreateReceipt(
	ctx context.Context,
	loanID uuid.UUID,
	receiptType model.ReceiptType,
) (*model.Receipt, error) {
	if !receiptType.Valid() {
		return nil, ErrInvalidReceiptType
	}

	loan := &model.KeyLoan{ID: loanID}

	_, err := m.repo.First(ctx, loan, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrLoanNotFound, err)
		}

		return nil, errs.Wrap(ErrGetLoanDB, err)
	}

	if receiptType == model.ReceiptTypeReturn && loan.Active() {
		return nil, ErrReceiptLoanNotReturned
	}

	keys, err := m.loanKeys(ctx, loan)
	if err != nil {
		return nil, err
	}

	rec := &model.Receipt{
		ID:          uuid.New(),
		KeyLoanID:   loan.ID,
		ReceiptType: receiptType,
	}

	ctx = model.LogWithReceipt(ctx, rec)

	document, err := m.renderer.Render(receipt.Data{
		Receipt: rec,
		Loan:    loan,
		Keys:    keys,
	})
	if err != nil {
		return nil, errs.Wrap(ErrRenderReceipt, err)
	}

	_, err = m.store.UploadFile(ctx, rec.DocumentName(), document, pdfContentType)
	if err != nil {
		return nil, errs.Wrap(ErrStoreReceiptDocument, err)
	}

	err = m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		err := tx.Create(ctx, rec)
		if err != nil {
			return errs.Wrap(ErrCreateReceiptDB, err)
		}

		return m.activity.Record(ctx, tx, &model.KeyLogEntry{
			KeyLoanID: &rec.KeyLoanID,
			Action:    ActionReceiptCreated,
			Message:   string(receiptType) + " receipt issued for " + loan.Contact,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "receipt issued", slog.Int("documentBytes", len(document)))

	return rec, nil
}

func (m *ReceiptManager) GetReceipt(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	rec := &model.Receipt{ID: id}

	_, err := m.repo.First(ctx, rec, *repo.NewQuery().Preload("KeyLoan"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrReceiptNotFound, err)
		}

		return nil, errs.Wrap(ErrGetReceiptDB, err)
	}

	return rec, nil
}

// GetDocument streams the receipt document. The signed scan replaces the
// rendered original once one has been attached. The returned name is the
// stored object name.
func (m *ReceiptManager) GetDocument(
	ctx context.Context,
	id uuid.UUID,
) (io.ReadCloser, string, error) {
	rec, err := m.GetReceipt(ctx, id)
	if err != nil {
		return nil, "", err
	}

	name := rec.DocumentName()
	if rec.FileID != nil && *rec.FileID != "" {
		name = *rec.FileID
	}

	if !m.store.FileExists(ctx, name) {
		return nil, "", ErrReceiptDocumentMissing
	}

	reader, err := m.store.DownloadFile(ctx, name)
	if err != nil {
		return nil, "", errs.Wrap(ErrReceiptDocumentMissing, err)
	}

	return reader, name, nil
}

// AttachScan stores the signed scan of a receipt and points the receipt at
// it.
func (m *ReceiptManager) AttachScan(
	ctx context.Context,
	id uuid.UUID,
	content []byte,
	contentType string,
) (*model.Receipt, error) {
	rec := &model.Receipt{ID: id}

	_, err := m.repo.First(ctx, rec, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrReceiptNotFound, err)
		}

		return nil, errs.Wrap(ErrGetReceiptDB, err)
	}

	name := scanObjectName(rec.ID, contentType)

	_, err = m.store.UploadFile(ctx, name, content, contentType)
	if err != nil {
		return nil, errs.Wrap(ErrStoreReceiptDocument, err)
	}

	rec.FileID = &name

	err = m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		_, err := tx.Patch(ctx, rec, *repo.NewQuery())
		if err != nil {
			return errs.Wrap(ErrUpdateReceiptDB, err)
		}

		return m.activity.Record(ctx, tx, &model.KeyLogEntry{
			KeyLoanID: &rec.KeyLoanID,
			Action:    ActionReceiptScanned,
			Message:   "signed scan attached to " + string(rec.ReceiptType) + " receipt",
		})
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// PurgeUnsigned deletes stored documents of receipts that never received a
// signed scan and are older than the cutoff. Rows are kept; reruns skip
// documents already gone.
func (m *ReceiptManager) PurgeUnsigned(ctx context.Context, cutoff time.Time) (int, error) {
	purged := 0

	query := repo.NewQuery().Where(
		repo.IsNull(repo.FileIDField),
		repo.Lt(repo.CreatedField, cutoff),
	)

	err := repo.ProcessInBatch(ctx, m.repo, query, loanScanBatchSize,
		func(batch []*model.Receipt) error {
			for _, rec := range batch {
				name := rec.DocumentName()

				if !m.store.FileExists(ctx, name) {
					continue
				}

				err := m.store.DeleteFile(ctx, name)
				if err != nil {
					return err
				}

				purged++
			}

			return nil
		})
	if err != nil {
		return purged, errs.Wrap(ErrPurgeReceiptDocuments, err)
	}

	return purged, nil
}

func (m *ReceiptManager) loanKeys(ctx context.Context, loan *model.KeyLoan) ([]*model.Key, error) {
	keyIDs, err := loan.KeyIDs()
	if err != nil {
		return nil, errs.Wrap(ErrGetLoanDB, err)
	}

	if len(keyIDs) == 0 {
		return nil, nil
	}

	var keys []*model.Key

	_, err = m.repo.List(ctx, model.Key{}, &keys,
		*repo.NewQuery().
			Where(repo.Eq(repo.IDField, keyIDs)).
			SetLimit(repo.MaxLimit).
			Order(repo.OrderField{Field: repo.KeyNameField, Direction: repo.Asc}))
	if err != nil {
		return nil, errs.Wrap(ErrListKeysDB, err)
	}

	return keys, nil
}

func scanObjectName(id uuid.UUID, contentType string) string {
	var ext string

	switch contentType {
	case pdfContentType:
		ext = ".pdf"
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	}

	return "receipts/" + id.String() + "-scan" + ext
}
