package manager

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

type CardSearchFilter struct {
	RentalObjectCode string
	HolderContact    string
	Disabled         *bool
}

type CardPatch struct {
	CardType         *string
	RentalObjectCode *string
	HolderContact    *string
	Disabled         *bool
}

type CardManager struct {
	repo repo.Repo
}

func NewCardManager(repository repo.Repo) *CardManager {
	return &CardManager{
		repo: repository,
	}
}

func (m *CardManager) ListCards(
	ctx context.Context,
	filter CardSearchFilter,
	pagination repo.Pagination,
) ([]*model.Card, int, error) {
	var conds []repo.Condition

	if filter.RentalObjectCode != "" {
		conds = append(conds, repo.Eq(repo.RentalObjectCodeField, filter.RentalObjectCode))
	}

	if filter.HolderContact != "" {
		conds = append(conds, repo.Eq(repo.HolderContactField, filter.HolderContact))
	}

	if filter.Disabled != nil {
		conds = append(conds, repo.Eq(repo.DisabledField, *filter.Disabled))
	}

	query := pagination.Apply(repo.NewQuery().Where(conds...)).
		Order(repo.OrderField{Field: repo.CardNumberField, Direction: repo.Asc})

	var cards []*model.Card

	count, err := m.repo.List(ctx, model.Card{}, &cards, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListCardsDB, err)
	}

	return cards, count, nil
}

// CreateCard registers an access card. Card numbers are unique; a duplicate
// surfaces as a conflict.
func (m *CardManager) CreateCard(ctx context.Context, card *model.Card) (*model.Card, error) {
	if card.CardNumber == "" {
		return nil, ErrCardNumberRequired
	}

	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}

	err := m.repo.Create(ctx, card)
	if err != nil {
		return nil, errs.Wrap(ErrCreateCardDB, err)
	}

	return card, nil
}

func (m *CardManager) GetCard(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	card := &model.Card{ID: id}

	_, err := m.repo.First(ctx, card, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrCardNotFound, err)
		}

		return nil, errs.Wrap(ErrGetCardDB, err)
	}

	return card, nil
}

func (m *CardManager) PatchCard(
	ctx context.Context,
	id uuid.UUID,
	patch CardPatch,
) (*model.Card, error) {
	card, err := m.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.CardType != nil {
		card.CardType = *patch.CardType
	}

	if patch.RentalObjectCode != nil {
		card.RentalObjectCode = *patch.RentalObjectCode
	}

	if patch.HolderContact != nil {
		if ptr.IsValidStrPtr(patch.HolderContact) {
			card.HolderContact = patch.HolderContact
		} else {
			card.HolderContact = nil
		}
	}

	if patch.Disabled != nil {
		card.Disabled = *patch.Disabled
	}

	// The row was loaded above; a full write-back keeps cleared and
	// zero-valued fields.
	_, err = m.repo.Patch(ctx, card, *repo.NewQuery().UpdateAll(true))
	if err != nil {
		return nil, errs.Wrap(ErrUpdateCardDB, err)
	}

	return card, nil
}

func (m *CardManager) DeleteCard(ctx context.Context, id uuid.UUID) error {
	deleted, err := m.repo.Delete(ctx, &model.Card{ID: id}, *repo.NewQuery())
	if err != nil {
		return errs.Wrap(ErrDeleteCardDB, err)
	}

	if !deleted {
		return ErrCardNotFound
	}

	return nil
}
