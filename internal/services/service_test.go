package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/invoice-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Invoice{}, &models.InvoiceDetail{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustInvoicePayload(t *testing.T, body string) *InvoicePayload {
	t.Helper()
	p, err := DecodeInvoicePayload(strings.NewReader(body))
	require.NoError(t, err)
	return p
}

func mustDetailPayload(t *testing.T, body string) *DetailPayload {
	t.Helper()
	p, err := DecodeDetailPayload(strings.NewReader(body))
	require.NoError(t, err)
	return p
}

// seedInvoice inserts an invoice with one detail directly, bypassing
// validation, for tests that need pre-existing state.
func seedInvoice(t *testing.T, db *gorm.DB, name, date string) models.Invoice {
	t.Helper()
	d, err := models.ParseDate(date)
	require.NoError(t, err)
	inv := models.Invoice{CustomerName: name, InvoiceDate: d}
	require.NoError(t, db.Create(&inv).Error)
	det := models.InvoiceDetail{
		InvoiceID:   inv.ID,
		Description: "New Product",
		Quantity:    10,
		UnitPrice:   decimal.NewFromInt(100),
		Price:       decimal.NewFromInt(1000),
	}
	require.NoError(t, db.Create(&det).Error)
	inv.Details = []models.InvoiceDetail{det}
	return inv
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// waitNs gives consecutive inserts distinct created_at values on platforms
// with coarse clock resolution.
func waitNs() { time.Sleep(time.Microsecond) }
