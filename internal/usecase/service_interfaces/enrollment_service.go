package service_interfaces

import (
	"context"

	"github.com/ledgerline/company-transfer-service/internal/domain"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, candidate domain.Company, idempotencyKey string, serializer domain.ResponseSerializer) (domain.Company, error)
}
