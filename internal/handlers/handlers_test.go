package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/invoice-api/internal/models"
	"github.com/diewo77/invoice-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// envelope mirrors both response shapes; the list-only fields stay nil on
// single-resource responses.
type envelope struct {
	Error      bool                `json:"error"`
	Message    string              `json:"message"`
	Data       json.RawMessage     `json:"data"`
	Errors     map[string][]string `json:"errors"`
	StatusCode int                 `json:"status_code"`
	Count      *int64              `json:"count"`
	Next       *string             `json:"next"`
	Previous   *string             `json:"previous"`
}

func newTestAPI(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Invoice{}, &models.InvoiceDetail{}))

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	RegisterRoutes(r,
		NewInvoiceHandler(services.NewInvoiceService(db)),
		NewInvoiceDetailHandler(services.NewInvoiceDetailService(db)))
	return r, db
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

// dataInvoice re-decodes the envelope's data as an invoice.
func dataInvoice(t *testing.T, env envelope) models.Invoice {
	t.Helper()
	var inv models.Invoice
	require.NoError(t, json.Unmarshal(env.Data, &inv))
	return inv
}

func dataDetail(t *testing.T, env envelope) models.InvoiceDetail {
	t.Helper()
	var det models.InvoiceDetail
	require.NoError(t, json.Unmarshal(env.Data, &det))
	return det
}

// createInvoice drives the public endpoint so handler tests exercise the
// same write path clients use.
func createInvoice(t *testing.T, h http.Handler, body string) models.Invoice {
	t.Helper()
	w, env := do(t, h, http.MethodPost, "/invoice", body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return dataInvoice(t, env)
}

func tableCount(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
