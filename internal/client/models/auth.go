package models

// AuthContext identifies the signed-in user for a single call. It is passed
// explicitly into every repository and remote-client operation instead of
// being read from ambient session state, which keeps calls deterministic
// and testable.
type AuthContext struct {
	UserID      string
	AccessToken string
}

// InvoiceWithLogs pairs an invoice with its interaction history, newest
// log first.
type InvoiceWithLogs struct {
	Invoice Invoice
	Logs    []InteractionLog
}
