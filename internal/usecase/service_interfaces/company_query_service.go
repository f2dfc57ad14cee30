package service_interfaces

import (
	"context"

	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
)

type CompanyQueryService interface {
	GetByCode(ctx context.Context, code string) (domain.Company, error)
	ListAll(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error)
	ListEnrolledLastMonth(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error)
	ListWithTransfersLastMonth(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error)
}
