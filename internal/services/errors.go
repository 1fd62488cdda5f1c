package services

import (
	"errors"

	"github.com/diewo77/invoice-api/internal/validation"
)

// Not-found conditions are detected by existence checks before any mutation
// is attempted, never inferred from a failed write, so handlers can map them
// to 404 deterministically. Anything else coming out of the store is a
// store-layer fault and propagates untyped.
var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvoiceDetailNotFound = errors.New("invoice detail not found")
	ErrInvalidPage           = errors.New("invalid page")
)

// ValidationError reports malformed input. Either Violations carries
// field-keyed messages, or Message carries a single whole-payload reason
// (empty payload, line items sent to the partial-update endpoint).
type ValidationError struct {
	Message    string
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// DuplicateError reports an invoice create that collides with an existing
// (customer_name, invoice_date) pair.
type DuplicateError struct {
	ExistingID string
}

func (e *DuplicateError) Error() string {
	return "invoice with this customer name and invoice date already exists"
}
