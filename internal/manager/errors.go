package manager

import (
	"errors"
)

var (
	ErrListKeysDB        = errors.New("failed to list keys from database")
	ErrGetKeyDB          = errors.New("failed to get key from database")
	ErrCreateKeyDB       = errors.New("failed to create key in database")
	ErrUpdateKeyDB       = errors.New("failed to update key in database")
	ErrDeleteKeysDB      = errors.New("failed to delete keys from database")
	ErrInvalidKeyType    = errors.New("invalid key type")
	ErrKeyNameRequired   = errors.New("key name cannot be empty")
	ErrKeySystemNotFound = errors.New("key system not found")
	ErrKeyNotFound       = errors.New("key not found")
	ErrKeyDisposed       = errors.New("key is disposed")
	ErrKeyInActiveLoan   = errors.New("key is part of an active loan")

	ErrListBundlesDB      = errors.New("failed to list key bundles from database")
	ErrGetBundleDB        = errors.New("failed to get key bundle from database")
	ErrCreateBundleDB     = errors.New("failed to create key bundle in database")
	ErrUpdateBundleDB     = errors.New("failed to update key bundle in database")
	ErrDeleteBundleDB     = errors.New("failed to delete key bundle from database")
	ErrBundleNameRequired = errors.New("bundle name cannot be empty")
	ErrBundleNotFound     = errors.New("key bundle not found")
	ErrBundleKeyNotFound  = errors.New("bundle references a key that does not exist")

	ErrListLoansDB         = errors.New("failed to list key loans from database")
	ErrGetLoanDB           = errors.New("failed to get key loan from database")
	ErrCreateLoanDB        = errors.New("failed to create key loan in database")
	ErrUpdateLoanDB        = errors.New("failed to update key loan in database")
	ErrInvalidLoanType     = errors.New("invalid loan type")
	ErrLoanContactRequired = errors.New("loan contact cannot be empty")
	ErrLoanKeysRequired    = errors.New("loan requires at least one key")
	ErrLoanKeyNotFound     = errors.New("loan references a key that does not exist")
	ErrLoanNotFound        = errors.New("key loan not found")
	ErrKeyAlreadyOnLoan    = errors.New("key is already out on an active loan")
	ErrLoanAlreadyReturned = errors.New("loan has already been returned")
	ErrLoanContactUnknown  = errors.New("loan contact is not a known contact")
	ErrLoanNoActiveLease   = errors.New("contact has no active lease")
	ErrContactLookupFailed = errors.New("failed to look up contact")
	ErrLeaseLookupFailed   = errors.New("failed to look up leases")

	ErrListEventsDB          = errors.New("failed to list key events from database")
	ErrGetEventDB            = errors.New("failed to get key event from database")
	ErrCreateEventDB         = errors.New("failed to create key event in database")
	ErrUpdateEventDB         = errors.New("failed to update key event in database")
	ErrInvalidEventType      = errors.New("invalid key event type")
	ErrInvalidEventStatus    = errors.New("invalid key event status")
	ErrEventNotFound         = errors.New("key event not found")
	ErrEventCannotTransition = errors.New("key event cannot transition to specified status")

	ErrListCardsDB        = errors.New("failed to list cards from database")
	ErrGetCardDB          = errors.New("failed to get card from database")
	ErrCreateCardDB       = errors.New("failed to create card in database")
	ErrUpdateCardDB       = errors.New("failed to update card in database")
	ErrDeleteCardDB       = errors.New("failed to delete card from database")
	ErrCardNumberRequired = errors.New("card number cannot be empty")
	ErrCardNotFound       = errors.New("card not found")

	ErrListReceiptsDB         = errors.New("failed to list receipts from database")
	ErrGetReceiptDB           = errors.New("failed to get receipt from database")
	ErrCreateReceiptDB        = errors.New("failed to create receipt in database")
	ErrUpdateReceiptDB        = errors.New("failed to update receipt in database")
	ErrInvalidReceiptType     = errors.New("invalid receipt type")
	ErrReceiptNotFound        = errors.New("receipt not found")
	ErrReceiptLoanNotReturned = errors.New("return receipt requires a returned loan")
	ErrRenderReceipt          = errors.New("failed to render receipt document")
	ErrStoreReceiptDocument   = errors.New("failed to store receipt document")
	ErrReceiptDocumentMissing = errors.New("receipt document not found in storage")
	ErrPurgeReceiptDocuments  = errors.New("failed to purge receipt documents")

	ErrListSignaturesDB     = errors.New("failed to list signatures from database")
	ErrCreateSignatureDB    = errors.New("failed to create signature in database")
	ErrSignatureSignerEmpty = errors.New("signature signer cannot be empty")
	ErrSignatureImageEmpty  = errors.New("signature image cannot be empty")

	ErrListLogEntriesDB = errors.New("failed to list log entries from database")
	ErrCreateLogEntryDB = errors.New("failed to create log entry in database")
)
