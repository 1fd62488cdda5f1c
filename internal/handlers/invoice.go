package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/diewo77/invoice-api/internal/httpx"
	"github.com/diewo77/invoice-api/internal/services"
	"github.com/go-chi/chi/v5"
)

// InvoiceHandler translates HTTP to invoice service calls and maps results
// onto the response envelope.
type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// Create: POST /invoice
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := services.DecodeInvoicePayload(r.Body)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid JSON body", nil, nil)
		return
	}
	inv, err := h.Svc.Create(p)
	if err != nil {
		respondError(w, err, "failed to create new invoice")
		return
	}
	httpx.Success(w, http.StatusCreated, "successfully created new invoice", inv)
}

// List: GET /invoice?search=&sort=&page=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.Svc.List(services.ListParams{
		Search: query.Get("search"),
		Sort:   query.Get("sort"),
		Page:   query.Get("page"),
	})
	if err != nil {
		respondError(w, err, "failed to retrieve invoices")
		return
	}
	var next, previous *string
	if result.Page < result.TotalPages {
		next = pageLink(r.URL, result.Page+1)
	}
	if result.Page > 1 {
		previous = pageLink(r.URL, result.Page-1)
	}
	httpx.List(w, "successfully retrieved invoice list", result.Invoices, result.Count, next, previous)
}

// Get: GET /invoice/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "failed to retrieve invoice")
		return
	}
	httpx.Success(w, http.StatusOK, "successfully retrieved invoice", inv)
}

// Replace: PUT /invoice/{id}
func (h *InvoiceHandler) Replace(w http.ResponseWriter, r *http.Request) {
	p, err := services.DecodeInvoicePayload(r.Body)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid JSON body", nil, nil)
		return
	}
	inv, err := h.Svc.Replace(chi.URLParam(r, "id"), p)
	if err != nil {
		respondError(w, err, "failed to update invoice")
		return
	}
	httpx.Success(w, http.StatusOK, "successfully updated invoice", inv)
}

// PartialUpdate: PATCH /invoice/{id}
func (h *InvoiceHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := services.DecodeInvoicePayload(r.Body)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid JSON body", nil, nil)
		return
	}
	inv, err := h.Svc.PartialUpdate(chi.URLParam(r, "id"), p)
	if err != nil {
		respondError(w, err, "failed to update invoice")
		return
	}
	httpx.Success(w, http.StatusOK, "successfully updated invoice", inv)
}

// Delete: DELETE /invoice/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, err, "failed to delete invoice")
		return
	}
	httpx.Success(w, http.StatusOK, "successfully deleted invoice", nil)
}

// pageLink rebuilds the list URL pointing at another page, preserving
// search and sort parameters.
func pageLink(u *url.URL, page int) *string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	link := u.Path + "?" + q.Encode()
	return &link
}
