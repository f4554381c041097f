package manager

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
)

type SignatureManager struct {
	repo repo.Repo
}

func NewSignatureManager(repository repo.Repo) *SignatureManager {
	return &SignatureManager{
		repo: repository,
	}
}

// CreateSignature records an on-screen signature against a receipt.
func (m *SignatureManager) CreateSignature(
	ctx context.Context,
	signature *model.Signature,
) (*model.Signature, error) {
	if signature.SignedBy == "" {
		return nil, ErrSignatureSignerEmpty
	}

	if signature.ImageData == "" {
		return nil, ErrSignatureImageEmpty
	}

	_, err := m.repo.First(ctx, &model.Receipt{ID: signature.ReceiptID}, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrReceiptNotFound, err)
		}

		return nil, errs.Wrap(ErrGetReceiptDB, err)
	}

	if signature.ID == uuid.Nil {
		signature.ID = uuid.New()
	}

	err = m.repo.Create(ctx, signature)
	if err != nil {
		return nil, errs.Wrap(ErrCreateSignatureDB, err)
	}

	return signature, nil
}

func (m *SignatureManager) ListSignatures(
	ctx context.Context,
	receiptID uuid.UUID,
	pagination repo.Pagination,
) ([]*model.Signature, int, error) {
	query := repo.NewQuery().Where(repo.Eq(repo.ReceiptIDField, receiptID))

	query = pagination.Apply(query).
		Order(repo.OrderField{Field: repo.CreatedField, Direction: repo.Asc})

	var signatures []*model.Signature

	count, err := m.repo.List(ctx, model.Signature{}, &signatures, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListSignaturesDB, err)
	}

	return signatures, count, nil
}
