package memory

import (
	"context"
	"sync"

	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
)

// IdempotencyRepository is the in-process backend used in development and
// tests. Records never expire.
type IdempotencyRepository struct {
	mu      sync.RWMutex
	records map[string]domain.IdempotencyRecord
}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{
		records: make(map[string]domain.IdempotencyRecord),
	}
}

func (r *IdempotencyRepository) FindByKey(_ context.Context, key string) (domain.IdempotencyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[key]
	if !ok {
		return domain.IdempotencyRecord{}, commons.ErrRecordNotFound
	}

	return record, nil
}

func (r *IdempotencyRepository) Save(_ context.Context, record domain.IdempotencyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// First capture wins.
	if _, ok := r.records[record.Key]; ok {
		return nil
	}
	r.records[record.Key] = record

	return nil
}
