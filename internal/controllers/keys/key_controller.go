package keys

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
)

// SearchKeys handles the paginated key search. Disposed keys stay hidden
// unless includeDisposed is set.
func (c *APIController) SearchKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, ok := parsePagination(w, r)
	if !ok {
		return
	}

	keySystemID, ok := queryUUID(w, r, "keySystemId")
	if !ok {
		return
	}

	includeDisposed, ok := queryBool(w, r, "includeDisposed")
	if !ok {
		return
	}

	filter := manager.KeySearchFilter{
		RentalObjectCode: r.URL.Query().Get("rentalObjectCode"),
		KeySystemID:      keySystemID,
		KeyType:          model.KeyType(r.URL.Query().Get("keyType")),
		NameContains:     r.URL.Query().Get("q"),
	}
	if includeDisposed != nil {
		filter.IncludeDisposed = *includeDisposed
	}

	keys, total, err := c.Manager.Keys.SearchKeys(ctx, filter, pagination)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.List(ctx, w, r, keysapi.KeysToAPI(keys), total, pagination)
}

// CreateKey handles the creation of a new key
func (c *APIController) CreateKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeBody[keysapi.CreateKeyRequest](w, r)
	if !ok {
		return
	}

	key, err := req.ToModel()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	created, err := c.Manager.Keys.CreateKey(ctx, key)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, keysapi.KeyToAPI(created))
}

// GetKey handles retrieving a key by its ID
func (c *APIController) GetKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	key, err := c.Manager.Keys.GetKey(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.KeyToAPI(key))
}

// PatchKey handles updating the updatable key fields
func (c *APIController) PatchKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody[keysapi.PatchKeyRequest](w, r)
	if !ok {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	key, err := c.Manager.Keys.PatchKey(ctx, id, patch)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.KeyToAPI(key))
}

// DisposeKey marks a key as disposed. Keys sitting in an active loan cannot
// be disposed.
func (c *APIController) DisposeKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	key, err := c.Manager.Keys.DisposeKey(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.KeyToAPI(key))
}

// RekeyKey advances the flex number of a key after a lock switch
func (c *APIController) RekeyKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	key, err := c.Manager.Keys.RekeyKey(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.KeyToAPI(key))
}

// BulkDeleteKeys hard deletes a set of keys in one call
func (c *APIController) BulkDeleteKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeBody[keysapi.BulkDeleteKeysRequest](w, r)
	if !ok {
		return
	}

	deleted, err := c.Manager.Keys.BulkDeleteKeys(ctx, req.IDs)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.BulkDeleteKeysResponse{Deleted: deleted})
}
