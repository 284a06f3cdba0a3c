package shared

import (
	"context"
	"time"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyRecord struct {
	Status       IdempotencyStatus `json:"status"`
	RequestHash  string            `json:"request_hash"`
	ResponseCode int               `json:"response_code,omitempty"`
	ResponseBody []byte            `json:"response_body,omitempty"`
}

// IdempotencyStore persists records per key. Get returns nil, nil for an
// unknown key; Reserve only succeeds for an unknown key.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Reserve(ctx context.Context, key string, rec IdempotencyRecord, ttl time.Duration) (bool, error)
	Save(ctx context.Context, key string, rec IdempotencyRecord, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
