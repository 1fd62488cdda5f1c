package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a billing record for one customer on one date. It owns its
// details; deleting an invoice removes them too.
type Invoice struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	CustomerName string          `gorm:"type:varchar(100);not null;index" json:"customer_name"`
	InvoiceDate  Date            `gorm:"type:date;not null;index" json:"invoice_date"`
	Details      []InvoiceDetail `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"invoice_details"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoice" }

func (inv *Invoice) BeforeCreate(_ *gorm.DB) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	return nil
}

// InvoiceDetail is a single billable line of an invoice. Price is either
// supplied by the caller or derived as quantity * unit_price; a supplied
// price is stored as given (overrides and discounts are legitimate).
type InvoiceDetail struct {
	ID          string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvoiceID   string          `gorm:"type:varchar(36);not null;index" json:"invoice_id"`
	Description string          `gorm:"type:varchar(100);not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (InvoiceDetail) TableName() string { return "invoice_detail" }

func (d *InvoiceDetail) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
