// file: internals/features/billing/service/errors.go
package service

import "errors"

// Error taxonomy for ledger operations. Controllers map these onto HTTP
// statuses; nothing here ever escapes as an unhandled fault.
var (
	// ErrNotFound: the entity id does not resolve.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyTerminal: already cancelled/voided. Benign; surfaced to the
	// caller as a warning result, not an error response.
	ErrAlreadyTerminal = errors.New("record is already cancelled or voided")

	// ErrValidation: missing/invalid required input (e.g. empty reason).
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized: role check failed.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrNotBillingContact: late-fee target lacks the billing-contact flag.
	ErrNotBillingContact = errors.New("target member is not a billing contact")

	// ErrNoOverdueInvoice: nothing on the account is eligible for a late fee.
	ErrNoOverdueInvoice = errors.New("no overdue invoice on the account")

	// ErrDuplicateLateFee: a late fee already exists for the overdue invoice.
	ErrDuplicateLateFee = errors.New("a late fee already exists for that invoice")
)

// LedgerResult is the structured outcome every ledger operation returns to
// its caller: a success flag plus a human-readable status line. Warning
// marks benign no-ops (already-terminal records).
type LedgerResult struct {
	Success bool   `json:"success"`
	Warning bool   `json:"warning,omitempty"`
	Message string `json:"message"`
}

func okResult(msg string) *LedgerResult {
	return &LedgerResult{Success: true, Message: msg}
}

func warnResult(msg string) *LedgerResult {
	return &LedgerResult{Success: true, Warning: true, Message: msg}
}
