package keys

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

// ListCards handles listing access cards with optional filters on rental
// object, holder and disabled state
func (c *APIController) ListCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, ok := parsePagination(w, r)
	if !ok {
		return
	}

	disabled, ok := queryBool(w, r, "disabled")
	if !ok {
		return
	}

	filter := manager.CardSearchFilter{
		RentalObjectCode: r.URL.Query().Get("rentalObjectCode"),
		HolderContact:    r.URL.Query().Get("holderContact"),
		Disabled:         disabled,
	}

	cards, total, err := c.Manager.Cards.ListCards(ctx, filter, pagination)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.List(ctx, w, r, keysapi.CardsToAPI(cards), total, pagination)
}

// CreateCard handles registering an access card
func (c *APIController) CreateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeBody[keysapi.CreateCardRequest](w, r)
	if !ok {
		return
	}

	card, err := req.ToModel()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	created, err := c.Manager.Cards.CreateCard(ctx, card)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, keysapi.CardToAPI(created))
}

// GetCard handles retrieving an access card by its ID
func (c *APIController) GetCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	card, err := c.Manager.Cards.GetCard(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.CardToAPI(card))
}

// PatchCard handles updating card attributes, including enabling and
// disabling the card
func (c *APIController) PatchCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody[keysapi.PatchCardRequest](w, r)
	if !ok {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	card, err := c.Manager.Cards.PatchCard(ctx, id, patch)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.CardToAPI(card))
}

// DeleteCard handles removing an access card from the registry
func (c *APIController) DeleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := c.Manager.Cards.DeleteCard(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
