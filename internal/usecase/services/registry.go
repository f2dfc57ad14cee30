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
)

const (
	companyCodeLength   = 8
	accountNumberLength = 15
)

// CodeGenerator produces a random uppercase alphanumeric string of the
// given length. Injected so identifier generation is deterministic under
// test.
type CodeGenerator func(length int) string

// DefaultCodeGenerator draws from a fresh UUID per call. Collisions are
// accepted as a low-probability risk; the unique indexes in postgres are
// the backstop.
func DefaultCodeGenerator(length int) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if length > len(raw) {
		length = len(raw)
	}
	return raw[:length]
}

// CompanyRegistry enforces identity invariants at enrollment time and
// assigns fresh identifiers to a candidate company.
type CompanyRegistry struct {
	companyRepo  repo_interfaces.CompanyRepository
	newID        func() string
	generateCode CodeGenerator
}

func NewCompanyRegistry(companyRepo repo_interfaces.CompanyRepository, newID func() string, generateCode CodeGenerator) *CompanyRegistry {
	if newID == nil {
		newID = uuid.NewString
	}
	if generateCode == nil {
		generateCode = DefaultCodeGenerator
	}

	return &CompanyRegistry{
		companyRepo:  companyRepo,
		newID:        newID,
		generateCode: generateCode,
	}
}

// Register checks tax id uniqueness and returns the candidate fully
// populated with id, code and account number. The returned company is not
// yet durable.
func (r *CompanyRegistry) Register(ctx context.Context, candidate domain.Company) (domain.Company, error) {
	_, err := r.companyRepo.FindByTaxID(ctx, candidate.TaxID)
	if err == nil {
		logger.Info("company registry duplicate tax id", logger.Fields{
			"taxId": candidate.TaxID.Value(),
		})
		return domain.Company{}, domain.ErrDuplicateTaxID
	}
	if !errors.Is(err, commons.ErrRecordNotFound) {
		logger.Error("company registry tax id lookup failed", err, logger.Fields{
			"taxId": candidate.TaxID.Value(),
		})
		return domain.Company{}, fmt.Errorf("lookup company by tax id: %w", err)
	}

	candidate.ID = r.newID()
	candidate.Code = r.generateCode(companyCodeLength)
	candidate.AccountNumber = r.generateCode(accountNumberLength)

	logger.Info("company registry assigned identifiers", logger.Fields{
		"companyId":     candidate.ID,
		"code":          candidate.Code,
		"accountNumber": candidate.AccountNumber,
	})

	return candidate, nil
}
