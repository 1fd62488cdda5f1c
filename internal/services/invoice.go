package services

import (
	"errors"
	"fmt"

	"github.com/diewo77/invoice-api/internal/models"
	"github.com/diewo77/invoice-api/internal/validation"
	"gorm.io/gorm"
)

// InvoiceService validates invoice payloads and applies them to the store.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// Create validates a full invoice payload (at least one line item, no
// duplicate customer/date pair) and inserts the invoice with all of its
// details in one transaction.
func (s *InvoiceService) Create(p *InvoicePayload) (*models.Invoice, error) {
	name, date, details, v := validateFullInvoice(p)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	var existing models.Invoice
	err := s.DB.Where("customer_name = ? AND invoice_date = ?", name, date).First(&existing).Error
	if err == nil {
		return nil, &DuplicateError{ExistingID: existing.ID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	inv := models.Invoice{CustomerName: name, InvoiceDate: date}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		// rows are inserted one by one so each detail gets its own
		// created_at; "first line item" stays well defined
		for i := range details {
			details[i].InvoiceID = inv.ID
			if err := tx.Create(&details[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(inv.ID)
}

// Get loads one invoice with its details ordered oldest first.
func (s *InvoiceService) Get(id string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.Preload("Details", detailOrder).First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	if inv.Details == nil {
		inv.Details = []models.InvoiceDetail{}
	}
	return &inv, nil
}

// Replace updates the invoice's scalar fields and swaps the entire line item
// set for the one in the payload: existing details are deleted and the new
// ones inserted inside one transaction, so a failure mid-sequence cannot
// leave a partial item set behind.
func (s *InvoiceService) Replace(id string, p *InvoicePayload) (*models.Invoice, error) {
	if err := s.mustExist(id); err != nil {
		return nil, err
	}
	name, date, details, v := validateFullInvoice(p)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"customer_name": name, "invoice_date": date}
		if err := tx.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceDetail{}).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].InvoiceID = id
			if err := tx.Create(&details[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// PartialUpdate applies only the scalar fields present in the payload.
// The invoice_details key is rejected outright, before anything is applied.
func (s *InvoiceService) PartialUpdate(id string, p *InvoicePayload) (*models.Invoice, error) {
	if err := s.mustExist(id); err != nil {
		return nil, err
	}
	if p.Has("invoice_details") {
		return nil, &ValidationError{Message: "invoice details cannot be updated using this endpoint"}
	}
	if p.Empty() {
		return nil, &ValidationError{Message: "empty payload is not allowed"}
	}

	v := validation.Violations{}
	updates := map[string]any{}
	if p.Has("customer_name") {
		name := deref(p.CustomerName)
		validation.Required("customer_name", name, v)
		updates["customer_name"] = name
	}
	if p.Has("invoice_date") {
		if p.InvoiceDate == nil {
			v.Add("invoice_date", "invoice_date must be a valid date in YYYY-MM-DD format")
		} else if date, err := models.ParseDate(*p.InvoiceDate); err != nil {
			v.Add("invoice_date", "invoice_date must be a valid date in YYYY-MM-DD format")
		} else {
			updates["invoice_date"] = date
		}
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	if err := s.DB.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes the invoice and all of its details. The child delete is
// explicit so the cascade does not depend on the sqlite foreign_keys pragma.
func (s *InvoiceService) Delete(id string) error {
	if err := s.mustExist(id); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, "id = ?", id).Error
	})
}

func (s *InvoiceService) mustExist(id string) error {
	var count int64
	if err := s.DB.Model(&models.Invoice{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func detailOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}

// validateFullInvoice checks a create/replace payload: customer_name
// required, invoice_date parseable (defaulting to today when absent), and at
// least one valid line item. All field problems accumulate in v.
func validateFullInvoice(p *InvoicePayload) (name string, date models.Date, details []models.InvoiceDetail, v validation.Violations) {
	v = validation.Violations{}
	name = deref(p.CustomerName)
	validation.Required("customer_name", name, v)
	date = resolveDate(p.InvoiceDate, v)

	if len(p.Details) == 0 {
		v.Add("invoice_details", "invoice_details is required")
		return
	}
	details = make([]models.InvoiceDetail, 0, len(p.Details))
	for i, dp := range p.Details {
		dv := validation.Violations{}
		details = append(details, buildDetail(dp, dv))
		v.MergePrefixed(fmt.Sprintf("invoice_details[%d].", i), dv)
	}
	return
}

func resolveDate(raw *string, v validation.Violations) models.Date {
	if raw == nil {
		return models.Today()
	}
	date, err := models.ParseDate(*raw)
	if err != nil {
		v.Add("invoice_date", "invoice_date must be a valid date in YYYY-MM-DD format")
	}
	return date
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
