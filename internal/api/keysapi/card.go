package keysapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/sanitise"
)

// Card is the wire form of an access card.
type Card struct {
	ID               uuid.UUID `json:"id"`
	CardNumber       string    `json:"cardNumber"`
	CardType         string    `json:"cardType,omitempty"`
	RentalObjectCode string    `json:"rentalObjectCode,omitempty"`
	HolderContact    *string   `json:"holderContact,omitempty"`
	Disabled         bool      `json:"disabled"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func CardToAPI(card *model.Card) Card {
	return Card{
		ID:               card.ID,
		CardNumber:       card.CardNumber,
		CardType:         card.CardType,
		RentalObjectCode: card.RentalObjectCode,
		HolderContact:    card.HolderContact,
		Disabled:         card.Disabled,
		CreatedAt:        card.CreatedAt,
		UpdatedAt:        card.UpdatedAt,
	}
}

func CardsToAPI(cards []*model.Card) []Card {
	out := make([]Card, len(cards))
	for i, card := range cards {
		out[i] = CardToAPI(card)
	}

	return out
}

type CreateCardRequest struct {
	CardNumber       string  `json:"cardNumber"`
	CardType         string  `json:"cardType"`
	RentalObjectCode string  `json:"rentalObjectCode"`
	HolderContact    *string `json:"holderContact"`
}

func (r *CreateCardRequest) ToModel() (*model.Card, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return nil, err
	}

	return &model.Card{
		CardNumber:       r.CardNumber,
		CardType:         r.CardType,
		RentalObjectCode: r.RentalObjectCode,
		HolderContact:    r.HolderContact,
	}, nil
}

type PatchCardRequest struct {
	CardType         *string `json:"cardType"`
	RentalObjectCode *string `json:"rentalObjectCode"`
	HolderContact    *string `json:"holderContact"`
	Disabled         *bool   `json:"disabled"`
}

func (r *PatchCardRequest) ToPatch() (manager.CardPatch, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return manager.CardPatch{}, err
	}

	return manager.CardPatch{
		CardType:         r.CardType,
		RentalObjectCode: r.RentalObjectCode,
		HolderContact:    r.HolderContact,
		Disabled:         r.Disabled,
	}, nil
}
