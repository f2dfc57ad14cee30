package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the immutable record of a completed funds movement. CompanyID
// is the debited company.
type Transfer struct {
	ID                  string
	Amount              decimal.Decimal
	DebitAccountNumber  string
	CreditAccountNumber string
	CompanyID           string
	Date                time.Time
	CreatedAt           time.Time
}
