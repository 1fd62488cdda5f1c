package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/invoice-api/internal/httpx"
	"github.com/diewo77/invoice-api/internal/services"
)

// respondError translates domain errors into the envelope. failMessage is
// the operation-specific message used for field-keyed validation failures.
func respondError(w http.ResponseWriter, err error, failMessage string) {
	var verr *services.ValidationError
	var derr *services.DuplicateError
	switch {
	case errors.Is(err, services.ErrInvoiceNotFound):
		httpx.Fail(w, http.StatusNotFound, "invoice not found", nil, nil)
	case errors.Is(err, services.ErrInvoiceDetailNotFound):
		httpx.Fail(w, http.StatusNotFound, "invoice detail not found", nil, nil)
	case errors.Is(err, services.ErrInvalidPage):
		httpx.Fail(w, http.StatusNotFound, "invalid page", nil, nil)
	case errors.As(err, &derr):
		httpx.Fail(w, http.StatusBadRequest, derr.Error(),
			map[string][]string{"invoice": {derr.Error()}},
			map[string]any{"existing_invoice_id": derr.ExistingID})
	case errors.As(err, &verr):
		if verr.Message != "" {
			httpx.Fail(w, http.StatusBadRequest, verr.Message, nil, nil)
			return
		}
		httpx.Fail(w, http.StatusBadRequest, failMessage, verr.Violations, nil)
	default:
		// store-layer faults are not part of the validation/not-found
		// taxonomy; surface them as plain server errors
		httpx.Fail(w, http.StatusInternalServerError, "internal server error", nil, nil)
	}
}
