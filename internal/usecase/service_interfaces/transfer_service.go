package service_interfaces

import (
	"context"

	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferService interface {
	Transfer(ctx context.Context, debitAccountNumber string, creditCompanyCode string, creditAccountNumber string, amount decimal.Decimal) (domain.Transfer, error)
}
