package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/company-transfer-service/internal/adapter/repository/repo_interfaces"
	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
	"github.com/shopspring/decimal"
)

type TransferService struct {
	companyRepo  repo_interfaces.CompanyRepository
	transferRepo repo_interfaces.TransferRepository
	clock        domain.Clock
	newID        func() string
}

func NewTransferService(
	companyRepo repo_interfaces.CompanyRepository,
	transferRepo repo_interfaces.TransferRepository,
	clock domain.Clock,
	newID func() string,
) *TransferService {
	if newID == nil {
		newID = uuid.NewString
	}

	return &TransferService{
		companyRepo:  companyRepo,
		transferRepo: transferRepo,
		clock:        clock,
		newID:        newID,
	}
}

// Transfer moves amount from the company owning debitAccountNumber to the
// company identified by creditCompanyCode, after checking that
// creditAccountNumber really belongs to that company. Validation failures
// abort before any write. The read-validate-write sequence relies on the
// persistence layer for isolation between concurrent transfers touching
// the same companies.
func (s *TransferService) Transfer(ctx context.Context, debitAccountNumber string, creditCompanyCode string, creditAccountNumber string, amount decimal.Decimal) (domain.Transfer, error) {
	debitAccountNumber = strings.TrimSpace(debitAccountNumber)
	creditCompanyCode = strings.TrimSpace(creditCompanyCode)
	creditAccountNumber = strings.TrimSpace(creditAccountNumber)

	logger.Info("transfer service transfer request", logger.Fields{
		"debitAccountNumber":  debitAccountNumber,
		"creditCompanyCode":   creditCompanyCode,
		"creditAccountNumber": creditAccountNumber,
		"amount":              amount.String(),
	})

	debitCompany, err := s.companyRepo.FindByAccountNumber(ctx, debitAccountNumber)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			logger.Info("transfer service debit account not found", logger.Fields{
				"debitAccountNumber": debitAccountNumber,
			})
			return domain.Transfer{}, fmt.Errorf("debit account %s: %w", debitAccountNumber, domain.ErrCompanyNotFound)
		}
		return domain.Transfer{}, fmt.Errorf("find company by debit account number: %w", err)
	}

	creditCompany, err := s.companyRepo.FindByCode(ctx, creditCompanyCode)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			logger.Info("transfer service credit company not found", logger.Fields{
				"creditCompanyCode": creditCompanyCode,
			})
			return domain.Transfer{}, fmt.Errorf("credit company %s: %w", creditCompanyCode, domain.ErrCompanyNotFound)
		}
		return domain.Transfer{}, fmt.Errorf("find company by code: %w", err)
	}

	if debitCompany.ID == creditCompany.ID {
		logger.Info("transfer service rejected same company transfer", logger.Fields{
			"companyId": debitCompany.ID,
		})
		return domain.Transfer{}, domain.ErrSameCompanyTransfer
	}

	if creditCompany.AccountNumber != creditAccountNumber {
		logger.Info("transfer service rejected account mismatch", logger.Fields{
			"creditCompanyCode":   creditCompanyCode,
			"creditAccountNumber": creditAccountNumber,
		})
		return domain.Transfer{}, domain.ErrAccountMismatch
	}

	if err := debitCompany.Debit(amount); err != nil {
		logger.Info("transfer service debit rejected", logger.Fields{
			"debitAccountNumber": debitAccountNumber,
			"amount":             amount.String(),
			"reason":             err.Error(),
		})
		return domain.Transfer{}, err
	}

	if err := creditCompany.Credit(amount); err != nil {
		// Unreachable in normal flow: the amount was already validated by
		// the debit above.
		return domain.Transfer{}, err
	}

	transfer := domain.Transfer{
		ID:                  s.newID(),
		Amount:              amount,
		DebitAccountNumber:  debitAccountNumber,
		CreditAccountNumber: creditAccountNumber,
		CompanyID:           debitCompany.ID,
		Date:                s.clock.Now(),
	}

	// Both balance updates and the transfer record commit together or
	// not at all.
	created, err := s.transferRepo.Create(ctx, transfer, debitCompany, creditCompany)
	if err != nil {
		logger.Error("transfer service persist transfer failed", err, logger.Fields{
			"transferId": transfer.ID,
		})
		return domain.Transfer{}, fmt.Errorf("persist transfer: %w", err)
	}

	logger.Info("transfer service transfer completed", logger.Fields{
		"transferId":          created.ID,
		"debitAccountNumber":  created.DebitAccountNumber,
		"creditAccountNumber": created.CreditAccountNumber,
		"amount":              created.Amount.String(),
	})

	return created, nil
}
