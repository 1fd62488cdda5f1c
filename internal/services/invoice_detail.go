package services

import (
	"errors"

	"github.com/diewo77/invoice-api/internal/models"
	"github.com/diewo77/invoice-api/internal/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceDetailService handles the line-item-granularity operations that
// exist outside the invoice write paths: append, patch, delete.
type InvoiceDetailService struct {
	DB *gorm.DB
}

func NewInvoiceDetailService(db *gorm.DB) *InvoiceDetailService {
	return &InvoiceDetailService{DB: db}
}

// Append validates a single line item and attaches it to an existing
// invoice. The invoice existence check runs first, so an unknown invoice id
// is a not-found even when the payload is also invalid.
func (s *InvoiceDetailService) Append(invoiceID string, p *DetailPayload) (*models.InvoiceDetail, error) {
	var count int64
	if err := s.DB.Model(&models.Invoice{}).Where("id = ?", invoiceID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrInvoiceNotFound
	}

	v := validation.Violations{}
	det := buildDetail(*p, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	det.InvoiceID = invoiceID
	if err := s.DB.Create(&det).Error; err != nil {
		return nil, err
	}
	return &det, nil
}

// PartialUpdate applies only the fields present in the payload. When
// quantity or unit_price change without an explicit price, the price is
// recomputed from the item's resulting values; otherwise a stored price is
// never touched.
func (s *InvoiceDetailService) PartialUpdate(id string, p *DetailPayload) (*models.InvoiceDetail, error) {
	var det models.InvoiceDetail
	err := s.DB.First(&det, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvoiceDetailNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return nil, &ValidationError{Message: "empty payload is not allowed"}
	}

	v := validation.Violations{}
	if p.Has("description") {
		desc := deref(p.Description)
		validation.Required("description", desc, v)
		det.Description = desc
	}
	if p.Has("quantity") {
		if p.Quantity == nil {
			v.Add("quantity", "quantity may not be null")
		} else {
			validation.NonNegativeInt("quantity", *p.Quantity, v)
			det.Quantity = *p.Quantity
		}
	}
	if p.Has("unit_price") {
		if p.UnitPrice == nil {
			v.Add("unit_price", "unit_price may not be null")
		} else {
			validation.NonNegativeDecimal("unit_price", *p.UnitPrice, v)
			det.UnitPrice = *p.UnitPrice
		}
	}
	if p.Has("price") && p.Price != nil {
		validation.NonNegativeDecimal("price", *p.Price, v)
		det.Price = *p.Price
	} else if p.Has("quantity") || p.Has("unit_price") {
		det.Price = det.UnitPrice.Mul(decimal.NewFromInt(int64(det.Quantity)))
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	if err := s.DB.Save(&det).Error; err != nil {
		return nil, err
	}
	return &det, nil
}

// Delete removes a single line item.
func (s *InvoiceDetailService) Delete(id string) error {
	var count int64
	if err := s.DB.Model(&models.InvoiceDetail{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvoiceDetailNotFound
	}
	return s.DB.Delete(&models.InvoiceDetail{}, "id = ?", id).Error
}

// buildDetail validates one line item payload for the create paths
// (invoice create/replace and standalone append), deriving the price when
// none was supplied. Violations are keyed by bare field name; callers merge
// them under an index prefix for nested items.
func buildDetail(p DetailPayload, v validation.Violations) models.InvoiceDetail {
	var det models.InvoiceDetail
	if p.Description == nil {
		v.Add("description", "description is required")
	} else {
		validation.Required("description", *p.Description, v)
		det.Description = *p.Description
	}
	if p.Quantity == nil {
		v.Add("quantity", "quantity is required")
	} else {
		validation.NonNegativeInt("quantity", *p.Quantity, v)
		det.Quantity = *p.Quantity
	}
	if p.UnitPrice == nil {
		v.Add("unit_price", "unit_price is required")
	} else {
		validation.NonNegativeDecimal("unit_price", *p.UnitPrice, v)
		det.UnitPrice = *p.UnitPrice
	}
	switch {
	case p.Price == nil:
		// Derived at validation time; no re-derivation happens later.
		if p.Quantity != nil && p.UnitPrice != nil {
			det.Price = p.UnitPrice.Mul(decimal.NewFromInt(int64(*p.Quantity)))
		}
	default:
		validation.NonNegativeDecimal("price", *p.Price, v)
		det.Price = *p.Price
	}
	return det
}
