package domain

import (
	"fmt"
	"strings"
)

const taxIDLength = 11

// TaxID is the externally issued fiscal identifier of a company. The
// normalized form (digits only, no dashes) is what uniqueness is enforced
// on.
type TaxID struct {
	value string
}

// NewTaxID validates and builds a TaxID. Dashes and surrounding whitespace
// are tolerated on input; the normalized value must be exactly 11 digits.
func NewTaxID(value string) (TaxID, error) {
	normalized := normalizeTaxID(value)
	if len(normalized) != taxIDLength {
		return TaxID{}, fmt.Errorf("tax id must contain exactly %d digits", taxIDLength)
	}
	for _, ch := range normalized {
		if ch < '0' || ch > '9' {
			return TaxID{}, fmt.Errorf("tax id must contain exactly %d digits", taxIDLength)
		}
	}

	return TaxID{value: strings.TrimSpace(value)}, nil
}

// Value returns the tax id as supplied, minus surrounding whitespace.
func (t TaxID) Value() string {
	return t.value
}

// Normalized returns the digits-only form used as the uniqueness key.
func (t TaxID) Normalized() string {
	return normalizeTaxID(t.value)
}

func (t TaxID) IsZero() bool {
	return t.value == ""
}

func normalizeTaxID(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, "-", ""))
}
