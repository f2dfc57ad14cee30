package repo_interfaces

import (
	"context"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
)

type CompanyRepository interface {
	Save(ctx context.Context, company domain.Company) (domain.Company, error)
	FindByCode(ctx context.Context, code string) (domain.Company, error)
	FindByTaxID(ctx context.Context, taxID domain.TaxID) (domain.Company, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (domain.Company, error)
	FindAll(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error)
	FindEnrolledSince(ctx context.Context, since time.Time, pageable commons.Pageable) (commons.Page[domain.Company], error)
	FindWithTransfersSince(ctx context.Context, since time.Time, pageable commons.Pageable) (commons.Page[domain.Company], error)
}
