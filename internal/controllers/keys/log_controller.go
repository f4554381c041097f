package keys

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

// ListLogs handles listing activity entries, optionally narrowed to a key
// or a loan
func (c *APIController) ListLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, ok := parsePagination(w, r)
	if !ok {
		return
	}

	keyID, ok := queryUUID(w, r, "keyId")
	if !ok {
		return
	}

	keyLoanID, ok := queryUUID(w, r, "keyLoanId")
	if !ok {
		return
	}

	filter := manager.ActivityFilter{
		KeyID:     keyID,
		KeyLoanID: keyLoanID,
	}

	entries, total, err := c.Manager.Activity.ListEntries(ctx, filter, pagination)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.List(ctx, w, r, keysapi.KeyLogEntriesToAPI(entries), total, pagination)
}
