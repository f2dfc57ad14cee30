package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is a legal entity enrolled in the system. Code is the public
// lookup key, AccountNumber the routing key for transfers. Balance is only
// ever mutated through Debit and Credit.
type Company struct {
	ID             string
	Code           string
	TaxID          TaxID
	LegalName      string
	EnrollmentDate time.Time
	Balance        decimal.Decimal
	AccountNumber  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Debit subtracts amount from the balance. The amount must be strictly
// positive and the resulting balance must not go negative.
func (c *Company) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if c.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	c.Balance = c.Balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance. An unset balance counts as zero, which
// the decimal zero value already gives us.
func (c *Company) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	c.Balance = c.Balance.Add(amount)
	return nil
}
