package keys

import (
	"github.com/go-chi/chi/v5"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/clients"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/storage"
)

// APIController handles API requests against the key registry.
type APIController struct {
	Manager *manager.Manager

	store storage.ObjectStore
}

// NewAPIController creates a new instance of APIController over the provided
// repository, object store and downstream adapters.
func NewAPIController(
	r repo.Repo,
	store storage.ObjectStore,
	clientsFactory *clients.Factory,
) *APIController {
	return &APIController{
		Manager: manager.New(r, store, clientsFactory),
		store:   store,
	}
}

// Routes registers the versioned API surface. Request identity and
// authentication middleware are applied by the caller, so test servers can
// mount the same routes without minting tokens.
func (c *APIController) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/keys", c.SearchKeys)
	r.Post("/keys", c.CreateKey)
	r.Post("/keys/bulk-delete", c.BulkDeleteKeys)
	r.Get("/keys/{id}", c.GetKey)
	r.Patch("/keys/{id}", c.PatchKey)
	r.Post("/keys/{id}/dispose", c.DisposeKey)
	r.Post("/keys/{id}/rekey", c.RekeyKey)

	r.Get("/key-bundles", c.ListKeyBundles)
	r.Post("/key-bundles", c.CreateKeyBundle)
	r.Get("/key-bundles/{id}", c.GetKeyBundle)
	r.Patch("/key-bundles/{id}", c.PatchKeyBundle)
	r.Delete("/key-bundles/{id}", c.DeleteKeyBundle)

	r.Get("/key-loans", c.ListKeyLoans)
	r.Post("/key-loans", c.CreateKeyLoan)
	r.Get("/key-loans/{id}", c.GetKeyLoan)
	r.Patch("/key-loans/{id}", c.PatchKeyLoan)
	r.Post("/key-loans/{id}/return", c.ReturnKeyLoan)
	r.Post("/key-loans/{id}/transfer", c.TransferKeyLoan)

	r.Get("/key-events", c.ListKeyEvents)
	r.Post("/key-events", c.CreateKeyEvent)
	r.Get("/key-events/{id}", c.GetKeyEvent)
	r.Patch("/key-events/{id}/status", c.TransitionKeyEvent)

	r.Get("/cards", c.ListCards)
	r.Post("/cards", c.CreateCard)
	r.Get("/cards/{id}", c.GetCard)
	r.Patch("/cards/{id}", c.PatchCard)
	r.Delete("/cards/{id}", c.DeleteCard)

	r.Get("/receipts", c.ListReceipts)
	r.Post("/receipts", c.CreateReceipt)
	r.Get("/receipts/{id}", c.GetReceipt)
	r.Get("/receipts/{id}/document", c.GetReceiptDocument)
	r.Post("/receipts/{id}/scan", c.AttachReceiptScan)

	r.Get("/signatures", c.ListSignatures)
	r.Post("/signatures", c.CreateSignature)

	r.Get("/logs", c.ListLogs)

	r.Get("/files/*", c.GetFile)

	return r
}
