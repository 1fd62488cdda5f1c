package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to the list of reasons it failed. All checks
// accumulate here so a response reports every broken field at once.
type Violations map[string][]string

func (v Violations) Add(field, message string) { v[field] = append(v[field], message) }

func (v Violations) Empty() bool { return len(v) == 0 }

// MergePrefixed copies violations from other under prefix+field keys. Used
// for nested collections, e.g. prefix "invoice_details[0].".
func (v Violations) MergePrefixed(prefix string, other Violations) {
	for field, messages := range other {
		v[prefix+field] = append(v[prefix+field], messages...)
	}
}

// Required adds a violation when value is missing or blank.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, field+" is required")
	}
}

// NonNegativeInt adds a violation when value is below zero.
func NonNegativeInt(field string, value int, v Violations) {
	if value < 0 {
		v.Add(field, field+" cannot be less than 0")
	}
}

// NonNegativeDecimal adds a violation when value is below zero.
func NonNegativeDecimal(field string, value decimal.Decimal, v Violations) {
	if value.IsNegative() {
		v.Add(field, field+" cannot be less than 0")
	}
}
