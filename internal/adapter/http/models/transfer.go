package models

import (
	"errors"
	"strings"

	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	DebitAccountNumber  string `json:"debitAccountNumber"`
	CreditCompanyCode   string `json:"creditCompanyCode"`
	CreditAccountNumber string `json:"creditAccountNumber"`
	Amount              string `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.DebitAccountNumber) == "" {
		errs = append(errs, "debitAccountNumber is required")
	}
	if strings.TrimSpace(r.CreditCompanyCode) == "" {
		errs = append(errs, "creditCompanyCode is required")
	}
	if strings.TrimSpace(r.CreditAccountNumber) == "" {
		errs = append(errs, "creditAccountNumber is required")
	}

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else {
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			errs = append(errs, "amount must be numeric")
		} else if parsed.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "amount must be greater than zero")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransferResponse struct {
	ID                  string `json:"id"`
	Amount              string `json:"amount"`
	DebitAccountNumber  string `json:"debitAccountNumber"`
	CreditAccountNumber string `json:"creditAccountNumber"`
	CompanyID           string `json:"companyId"`
	Date                string `json:"date"`
}

func NewTransferResponse(transfer domain.Transfer) TransferResponse {
	return TransferResponse{
		ID:                  transfer.ID,
		Amount:              transfer.Amount.String(),
		DebitAccountNumber:  transfer.DebitAccountNumber,
		CreditAccountNumber: transfer.CreditAccountNumber,
		CompanyID:           transfer.CompanyID,
		Date:                transfer.Date.Format("2006-01-02"),
	}
}
