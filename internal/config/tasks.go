package config

const (
	TypeLoanReminderTask   = "loans:remind"
	TypeReceiptPurgeTask   = "receipts:purge"
	TypeKeyEventExpiryTask = "keyevents:expire"
)

var DefinedTasks = map[string]struct{}{
	TypeLoanReminderTask:   {},
	TypeReceiptPurgeTask:   {},
	TypeKeyEventExpiryTask: {},
}
