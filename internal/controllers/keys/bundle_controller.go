package keys

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
)

// ListKeyBundles handles listing bundles ordered by name
func (c *APIController) ListKeyBundles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, ok := parsePagination(w, r)
	if !ok {
		return
	}

	bundles, total, err := c.Manager.Bundles.ListBundles(ctx, pagination)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiBundles, err := keysapi.KeyBundlesToAPI(bundles)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.List(ctx, w, r, apiBundles, total, pagination)
}

// CreateKeyBundle handles the creation of a named key set
func (c *APIController) CreateKeyBundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeBody[keysapi.CreateKeyBundleRequest](w, r)
	if !ok {
		return
	}

	bundle, keyIDs, err := req.ToModel()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	created, err := c.Manager.Bundles.CreateBundle(ctx, bundle, keyIDs)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiBundle, err := keysapi.KeyBundleToAPI(created)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, apiBundle)
}

// GetKeyBundle handles retrieving a bundle by its ID
func (c *APIController) GetKeyBundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	bundle, err := c.Manager.Bundles.GetBundle(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiBundle, err := keysapi.KeyBundleToAPI(bundle)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, apiBundle)
}

// PatchKeyBundle handles renaming a bundle or replacing its member keys
func (c *APIController) PatchKeyBundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody[keysapi.PatchKeyBundleRequest](w, r)
	if !ok {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	bundle, err := c.Manager.Bundles.PatchBundle(ctx, id, patch)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiBundle, err := keysapi.KeyBundleToAPI(bundle)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, apiBundle)
}

// DeleteKeyBundle handles deleting a bundle. Member keys are untouched.
func (c *APIController) DeleteKeyBundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := c.Manager.Bundles.DeleteBundle(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
