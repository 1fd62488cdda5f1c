package server

import (
	"net/http"

	"github.com/diewo77/invoice-api/internal/handlers"
	"github.com/diewo77/invoice-api/internal/httpx"
	"github.com/diewo77/invoice-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares
// applied.
func New(db *gorm.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// the API is defined without trailing slashes; tolerate both forms
	r.Use(middleware.StripSlashes)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.Success(w, http.StatusOK, "ok", nil)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// lightweight DB check (SELECT 1)
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.Fail(w, http.StatusServiceUnavailable, "degraded", nil, nil)
			return
		}
		httpx.Success(w, http.StatusOK, "ok", nil)
	})

	ih := handlers.NewInvoiceHandler(services.NewInvoiceService(db))
	dh := handlers.NewInvoiceDetailHandler(services.NewInvoiceDetailService(db))
	handlers.RegisterRoutes(r, ih, dh)

	return r
}
