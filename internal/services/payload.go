package services

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"
)

// Payload fields are pointers so that "key omitted" is distinguishable from
// "key set to a zero value". On top of that each decoded payload keeps the
// raw key set, which also catches keys sent explicitly as null — the partial
// update rules care about key presence, not content.

// InvoicePayload is the untrusted body of an invoice create/replace/patch
// request.
type InvoicePayload struct {
	CustomerName *string         `json:"customer_name"`
	InvoiceDate  *string         `json:"invoice_date"`
	Details      []DetailPayload `json:"invoice_details"`

	keys map[string]json.RawMessage
}

// DetailPayload is the untrusted body of a single line item, either nested
// in an invoice payload or sent standalone to the detail endpoints.
type DetailPayload struct {
	Description *string          `json:"description"`
	Quantity    *int             `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Price       *decimal.Decimal `json:"price"`

	keys map[string]json.RawMessage
}

// DecodeInvoicePayload reads and decodes a request body. A body that is not
// a JSON object at all is a decode error; field-level problems are left to
// validation.
func DecodeInvoicePayload(r io.Reader) (*InvoicePayload, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, err
	}
	var p InvoicePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	p.keys = keys
	return &p, nil
}

// DecodeDetailPayload reads and decodes a standalone line item body.
func DecodeDetailPayload(r io.Reader) (*DetailPayload, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, err
	}
	var p DetailPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	p.keys = keys
	return &p, nil
}

// Has reports whether the key was present in the request body, regardless
// of its value.
func (p *InvoicePayload) Has(field string) bool {
	_, ok := p.keys[field]
	return ok
}

// Empty reports whether none of the recognized invoice fields were sent.
func (p *InvoicePayload) Empty() bool {
	return !p.Has("customer_name") && !p.Has("invoice_date") && !p.Has("invoice_details")
}

// Has reports whether the key was present in the request body.
func (p *DetailPayload) Has(field string) bool {
	_, ok := p.keys[field]
	return ok
}

// Empty reports whether none of the recognized detail fields were sent.
func (p *DetailPayload) Empty() bool {
	return !p.Has("description") && !p.Has("quantity") && !p.Has("unit_price") && !p.Has("price")
}
