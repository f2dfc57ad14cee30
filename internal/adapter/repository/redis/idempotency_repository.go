package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:"

// IdempotencyRepository keeps idempotency records in redis. SetNX gives
// the write-once semantics; records expire after the configured TTL so
// the keyspace does not grow without bound.
type IdempotencyRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewIdempotencyRepository(client *goredis.Client, ttl time.Duration) *IdempotencyRepository {
	return &IdempotencyRepository{
		client: client,
		ttl:    ttl,
	}
}

type storedRecord struct {
	Key            string    `json:"key"`
	ResponseBody   []byte    `json:"responseBody"`
	ResponseStatus int       `json:"responseStatus"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (r *IdempotencyRepository) FindByKey(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.IdempotencyRecord{}, commons.ErrRecordNotFound
		}
		logger.Error("redis idempotency repository get failed", err, logger.Fields{
			"idempotencyKey": key,
		})
		return domain.IdempotencyRecord{}, fmt.Errorf("get idempotency record: %w", err)
	}

	var stored storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("decode idempotency record: %w", err)
	}

	return domain.IdempotencyRecord{
		Key:            stored.Key,
		ResponseBody:   stored.ResponseBody,
		ResponseStatus: stored.ResponseStatus,
		CreatedAt:      stored.CreatedAt,
	}, nil
}

func (r *IdempotencyRepository) Save(ctx context.Context, record domain.IdempotencyRecord) error {
	raw, err := json.Marshal(storedRecord{
		Key:            record.Key,
		ResponseBody:   record.ResponseBody,
		ResponseStatus: record.ResponseStatus,
		CreatedAt:      record.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode idempotency record: %w", err)
	}

	// SetNX keeps the first captured response authoritative when two
	// writers race on the same key.
	if err := r.client.SetNX(ctx, keyPrefix+record.Key, raw, r.ttl).Err(); err != nil {
		logger.Error("redis idempotency repository save failed", err, logger.Fields{
			"idempotencyKey": record.Key,
		})
		return fmt.Errorf("save idempotency record: %w", err)
	}

	return nil
}
