package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerline/company-transfer-service/internal/adapter/repository/repo_interfaces"
	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
)

// CompanyQueryService serves the read-only listing and report endpoints.
type CompanyQueryService struct {
	companyRepo repo_interfaces.CompanyRepository
	clock       domain.Clock
}

func NewCompanyQueryService(companyRepo repo_interfaces.CompanyRepository, clock domain.Clock) *CompanyQueryService {
	return &CompanyQueryService{
		companyRepo: companyRepo,
		clock:       clock,
	}
}

func (s *CompanyQueryService) GetByCode(ctx context.Context, code string) (domain.Company, error) {
	code = strings.TrimSpace(code)
	logger.Info("company query service get by code", logger.Fields{
		"code": code,
	})

	company, err := s.companyRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.Company{}, fmt.Errorf("company %s: %w", code, domain.ErrCompanyNotFound)
		}
		return domain.Company{}, fmt.Errorf("find company by code: %w", err)
	}

	return company, nil
}

func (s *CompanyQueryService) ListAll(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	pageable = pageable.Normalize()
	logger.Info("company query service list all", logger.Fields{
		"page": pageable.Page,
		"size": pageable.Size,
	})

	page, err := s.companyRepo.FindAll(ctx, pageable)
	if err != nil {
		return commons.Page[domain.Company]{}, fmt.Errorf("list companies: %w", err)
	}

	return page, nil
}

func (s *CompanyQueryService) ListEnrolledLastMonth(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	pageable = pageable.Normalize()
	since := s.clock.Now().AddDate(0, -1, 0)
	logger.Info("company query service list enrolled last month", logger.Fields{
		"since": since.Format("2006-01-02"),
		"page":  pageable.Page,
		"size":  pageable.Size,
	})

	page, err := s.companyRepo.FindEnrolledSince(ctx, since, pageable)
	if err != nil {
		return commons.Page[domain.Company]{}, fmt.Errorf("list recently enrolled companies: %w", err)
	}

	return page, nil
}

func (s *CompanyQueryService) ListWithTransfersLastMonth(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	pageable = pageable.Normalize()
	since := s.clock.Now().AddDate(0, -1, 0)
	logger.Info("company query service list with transfers last month", logger.Fields{
		"since": since.Format("2006-01-02"),
		"page":  pageable.Page,
		"size":  pageable.Size,
	})

	page, err := s.companyRepo.FindWithTransfersSince(ctx, since, pageable)
	if err != nil {
		return commons.Page[domain.Company]{}, fmt.Errorf("list companies with recent transfers: %w", err)
	}

	return page, nil
}
