package repo_interfaces

import (
	"context"

	"github.com/ledgerline/company-transfer-service/internal/domain"
)

type IdempotencyRepository interface {
	FindByKey(ctx context.Context, key string) (domain.IdempotencyRecord, error)
	Save(ctx context.Context, record domain.IdempotencyRecord) error
}
