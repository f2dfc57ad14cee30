package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
)

type IdempotencyRepository struct {
	db *sql.DB
}

func NewIdempotencyRepository(db *sql.DB) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) FindByKey(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	const query = `
SELECT key, response_body, response_status, created_at
FROM idempotency_keys
WHERE key = $1`

	var record domain.IdempotencyRecord
	if err := r.db.QueryRowContext(ctx, query, key).Scan(
		&record.Key,
		&record.ResponseBody,
		&record.ResponseStatus,
		&record.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.IdempotencyRecord{}, commons.ErrRecordNotFound
		}
		logger.Error("idempotency repository find failed", err, logger.Fields{
			"idempotencyKey": key,
		})
		return domain.IdempotencyRecord{}, fmt.Errorf("get idempotency record: %w", err)
	}

	return record, nil
}

// Save writes the record once; a concurrent duplicate insert loses silently
// so the first captured response stays authoritative.
func (r *IdempotencyRepository) Save(ctx context.Context, record domain.IdempotencyRecord) error {
	const query = `
INSERT INTO idempotency_keys (key, response_body, response_status, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (key) DO NOTHING`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		record.Key,
		record.ResponseBody,
		record.ResponseStatus,
		record.CreatedAt,
	); err != nil {
		logger.Error("idempotency repository save failed", err, logger.Fields{
			"idempotencyKey": record.Key,
		})
		return fmt.Errorf("save idempotency record: %w", err)
	}

	return nil
}
