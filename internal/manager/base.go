package manager

import (
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/clients"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/receipt"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/storage"
)

// Manager bundles the per-aggregate managers the API and the task workers
// operate through.
type Manager struct {
	Keys       *KeyManager
	Bundles    *BundleManager
	Loans      *LoanManager
	Events     *EventManager
	Cards      *CardManager
	Receipts   *ReceiptManager
	Signatures *SignatureManager
	Activity   *ActivityManager
}

func New(
	repository repo.Repo,
	store storage.ObjectStore,
	clientsFactory *clients.Factory,
) *Manager {
	activity := NewActivityManager(repository)

	return &Manager{
		Keys:       NewKeyManager(repository, activity),
		Bundles:    NewBundleManager(repository),
		Loans:      NewLoanManager(repository, activity, clientsFactory),
		Events:     NewEventManager(repository, activity),
		Cards:      NewCardManager(repository),
		Receipts:   NewReceiptManager(repository, store, receipt.NewRenderer(), activity),
		Signatures: NewSignatureManager(repository),
		Activity:   activity,
	}
}
