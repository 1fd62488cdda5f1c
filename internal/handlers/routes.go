package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the invoice and invoice-detail endpoints. Callers
// are expected to strip trailing slashes before routing.
func RegisterRoutes(r chi.Router, ih *InvoiceHandler, dh *InvoiceDetailHandler) {
	r.Route("/invoice", func(r chi.Router) {
		r.Post("/", ih.Create)
		r.Get("/", ih.List)
		r.Get("/{id}", ih.Get)
		r.Put("/{id}", ih.Replace)
		r.Patch("/{id}", ih.PartialUpdate)
		r.Delete("/{id}", ih.Delete)
	})
	r.Route("/invoice-detail", func(r chi.Router) {
		// POST takes the owning invoice's id; PATCH/DELETE take a detail id.
		r.Post("/{id}", dh.Append)
		r.Patch("/{id}", dh.PartialUpdate)
		r.Delete("/{id}", dh.Delete)
	})
}
