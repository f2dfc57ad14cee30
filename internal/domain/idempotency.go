package domain

import "time"

// IdempotencyRecord captures the first successful response for a
// caller-supplied key. Written at most once per key, never mutated.
type IdempotencyRecord struct {
	Key            string
	ResponseBody   []byte
	ResponseStatus int
	CreatedAt      time.Time
}
