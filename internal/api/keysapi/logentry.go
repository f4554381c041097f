package keysapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
)

// KeyLogEntry is the wire form of an activity log record. Entries are read
// only; the service writes them as a side effect of mutating operations.
type KeyLogEntry struct {
	ID        uuid.UUID  `json:"id"`
	KeyID     *uuid.UUID `json:"keyId,omitempty"`
	KeyLoanID *uuid.UUID `json:"keyLoanId,omitempty"`
	Action    string     `json:"action"`
	Actor     string     `json:"actor"`
	Message   string     `json:"message,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func KeyLogEntryToAPI(entry *model.KeyLogEntry) KeyLogEntry {
	return KeyLogEntry{
		ID:        entry.ID,
		KeyID:     entry.KeyID,
		KeyLoanID: entry.KeyLoanID,
		Action:    entry.Action,
		Actor:     entry.Actor,
		Message:   entry.Message,
		CreatedAt: entry.CreatedAt,
	}
}

func KeyLogEntriesToAPI(entries []*model.KeyLogEntry) []KeyLogEntry {
	out := make([]KeyLogEntry, len(entries))
	for i, entry := range entries {
		out[i] = KeyLogEntryToAPI(entry)
	}

	return out
}
