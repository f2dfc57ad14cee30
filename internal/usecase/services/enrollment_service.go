package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/adapter/repository/repo_interfaces"
	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
)

type EnrollmentService struct {
	registry        *CompanyRegistry
	companyRepo     repo_interfaces.CompanyRepository
	idempotencyRepo repo_interfaces.IdempotencyRepository
	clock           domain.Clock
}

func NewEnrollmentService(
	registry *CompanyRegistry,
	companyRepo repo_interfaces.CompanyRepository,
	idempotencyRepo repo_interfaces.IdempotencyRepository,
	clock domain.Clock,
) *EnrollmentService {
	return &EnrollmentService{
		registry:        registry,
		companyRepo:     companyRepo,
		idempotencyRepo: idempotencyRepo,
		clock:           clock,
	}
}

// Enroll creates a new company. A previously captured idempotency key
// short-circuits with the stored response; a fresh key captures the
// serialized result after the company is durable. Failure to persist the
// idempotency record is tolerated: the company stays created and the
// replay guarantee for that key is lost.
func (s *EnrollmentService) Enroll(ctx context.Context, candidate domain.Company, idempotencyKey string, serializer domain.ResponseSerializer) (domain.Company, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	logger.Info("enrollment service enroll request", logger.Fields{
		"taxId":          candidate.TaxID.Value(),
		"legalName":      candidate.LegalName,
		"idempotencyKey": idempotencyKey,
	})

	record, err := s.idempotencyRepo.FindByKey(ctx, idempotencyKey)
	if err == nil {
		logger.Info("enrollment service duplicate request detected, replaying stored response", logger.Fields{
			"idempotencyKey": idempotencyKey,
		})
		return domain.Company{}, &domain.DuplicateRequestError{
			Key:            idempotencyKey,
			ResponseBody:   record.ResponseBody,
			ResponseStatus: record.ResponseStatus,
		}
	}
	if !errors.Is(err, commons.ErrRecordNotFound) {
		logger.Error("enrollment service idempotency lookup failed", err, logger.Fields{
			"idempotencyKey": idempotencyKey,
		})
		return domain.Company{}, fmt.Errorf("lookup idempotency key: %w", err)
	}

	registered, err := s.registry.Register(ctx, candidate)
	if err != nil {
		return domain.Company{}, err
	}

	if afterCalendarDay(registered.EnrollmentDate, s.clock.Now()) {
		logger.Info("enrollment service rejected future enrollment date", logger.Fields{
			"idempotencyKey": idempotencyKey,
			"enrollmentDate": registered.EnrollmentDate.Format("2006-01-02"),
		})
		return domain.Company{}, domain.ErrInvalidEnrollmentDate
	}

	saved, err := s.companyRepo.Save(ctx, registered)
	if err != nil {
		logger.Error("enrollment service save company failed", err, logger.Fields{
			"idempotencyKey": idempotencyKey,
			"taxId":          registered.TaxID.Value(),
		})
		return domain.Company{}, fmt.Errorf("save company: %w", err)
	}
	logger.Info("enrollment service company saved", logger.Fields{
		"companyId":      saved.ID,
		"code":           saved.Code,
		"idempotencyKey": idempotencyKey,
	})

	s.captureResponse(ctx, idempotencyKey, saved, serializer)

	return saved, nil
}

// captureResponse persists the idempotency record bound to the serialized
// company. This is a best-effort write outside the primary transaction: on
// failure the company remains created but the at-most-once replay guarantee
// for this key is lost.
func (s *EnrollmentService) captureResponse(ctx context.Context, idempotencyKey string, company domain.Company, serializer domain.ResponseSerializer) {
	body, err := serializer(company)
	if err != nil {
		logger.Error("enrollment service CRITICAL: company created but response serialization failed, duplicate processing possible for this key", err, logger.Fields{
			"idempotencyKey": idempotencyKey,
			"companyId":      company.ID,
		})
		return
	}

	record := domain.IdempotencyRecord{
		Key:            idempotencyKey,
		ResponseBody:   body,
		ResponseStatus: http.StatusCreated,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.idempotencyRepo.Save(ctx, record); err != nil {
		logger.Error("enrollment service CRITICAL: company created but idempotency record save failed, duplicate processing possible for this key", err, logger.Fields{
			"idempotencyKey": idempotencyKey,
			"companyId":      company.ID,
		})
		return
	}

	logger.Info("enrollment service idempotency record captured", logger.Fields{
		"idempotencyKey": idempotencyKey,
		"companyId":      company.ID,
	})
}

// afterCalendarDay reports whether t falls on a later calendar day than
// ref, each read in its own location. The location of either value must
// not shift the comparison, so the formatted dates are compared rather
// than midnight instants.
func afterCalendarDay(t, ref time.Time) bool {
	return t.Format("2006-01-02") > ref.Format("2006-01-02")
}
