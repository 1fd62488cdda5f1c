package services

import (
	"strconv"
	"strings"

	"github.com/diewo77/invoice-api/internal/models"
	"gorm.io/gorm"
)

// PageSize is the fixed number of invoices per list page.
const PageSize = 10

// ListParams are the raw query parameters of a list read.
type ListParams struct {
	Search string
	Sort   string
	Page   string
}

// ListResult is one page of invoices plus the numbers the handler needs to
// build next/previous links.
type ListResult struct {
	Invoices   []models.Invoice
	Count      int64
	Page       int
	TotalPages int
}

// Sortable fields. Child fields sort by the invoice's first line item
// (earliest created_at, id as tie-break) so ordering stays deterministic
// when an invoice has several items; the same ordering is used when
// rendering invoice_details, so the representative row is always index 0.
var sortColumns = map[string]string{
	"customer":    "invoice.customer_name",
	"date":        "invoice.invoice_date",
	"description": firstDetailColumn("description"),
	"quantity":    firstDetailColumn("quantity"),
	"unit_price":  firstDetailColumn("unit_price"),
	"price":       firstDetailColumn("price"),
}

func firstDetailColumn(column string) string {
	return "(SELECT d." + column + " FROM invoice_detail d WHERE d.invoice_id = invoice.id ORDER BY d.created_at, d.id LIMIT 1)"
}

// List applies search, sort and pagination to the invoice collection.
func (s *InvoiceService) List(params ListParams) (*ListResult, error) {
	page := 1
	if raw := strings.TrimSpace(params.Page); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, ErrInvalidPage
		}
		page = n
	}

	base := func() *gorm.DB {
		q := s.DB.Model(&models.Invoice{})
		if search := strings.TrimSpace(params.Search); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			// Set union of parent and child matches; EXISTS keeps each
			// invoice a single row no matter how many items match.
			q = q.Where(
				"lower(invoice.customer_name) LIKE ? OR EXISTS (SELECT 1 FROM invoice_detail d WHERE d.invoice_id = invoice.id AND lower(d.description) LIKE ?)",
				like, like,
			)
		}
		return q
	}

	var count int64
	if err := base().Count(&count).Error; err != nil {
		return nil, err
	}
	totalPages := int((count + PageSize - 1) / PageSize)
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		return nil, ErrInvalidPage
	}

	var invoices []models.Invoice
	err := base().
		Preload("Details", detailOrder).
		Order(orderClause(params.Sort)).
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].Details == nil {
			invoices[i].Details = []models.InvoiceDetail{}
		}
	}
	return &ListResult{Invoices: invoices, Count: count, Page: page, TotalPages: totalPages}, nil
}

// orderClause maps the sort parameter onto the allow-list. An unrecognized
// or absent key falls back to the natural ordering (newest invoice_date
// first); created_at and id are appended as a stable tie-break.
func orderClause(sort string) string {
	order := "invoice.invoice_date DESC"
	key := strings.TrimSpace(sort)
	descending := strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")
	if column, ok := sortColumns[key]; ok {
		order = column
		if descending {
			order += " DESC"
		}
	}
	return order + ", invoice.created_at, invoice.id"
}
