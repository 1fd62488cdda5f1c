package handlers

import (
	"net/http"

	"github.com/diewo77/invoice-api/internal/httpx"
	"github.com/diewo77/invoice-api/internal/services"
	"github.com/go-chi/chi/v5"
)

// InvoiceDetailHandler serves the line-item-granularity endpoints.
type InvoiceDetailHandler struct {
	Svc *services.InvoiceDetailService
}

func NewInvoiceDetailHandler(svc *services.InvoiceDetailService) *InvoiceDetailHandler {
	return &InvoiceDetailHandler{Svc: svc}
}

// Append: POST /invoice-detail/{id} (id is the owning invoice's id)
func (h *InvoiceDetailHandler) Append(w http.ResponseWriter, r *http.Request) {
	p, err := services.DecodeDetailPayload(r.Body)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid JSON body", nil, nil)
		return
	}
	det, err := h.Svc.Append(chi.URLParam(r, "id"), p)
	if err != nil {
		respondError(w, err, "failed to create new invoice detail")
		return
	}
	httpx.Success(w, http.StatusCreated, "successfully created new invoice detail", det)
}

// PartialUpdate: PATCH /invoice-detail/{id}
func (h *InvoiceDetailHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := services.DecodeDetailPayload(r.Body)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid JSON body", nil, nil)
		return
	}
	det, err := h.Svc.PartialUpdate(chi.URLParam(r, "id"), p)
	if err != nil {
		respondError(w, err, "failed to update invoice detail")
		return
	}
	httpx.Success(w, http.StatusOK, "successfully updated invoice detail", det)
}

// Delete: DELETE /invoice-detail/{id}
func (h *InvoiceDetailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, err, "failed to delete invoice detail")
		return
	}
	httpx.Success(w, http.StatusOK, "successfully deleted invoice detail", nil)
}
