package videotasks

import (
	"context"

	"github.com/clipforge/clipforge-backend/internal/engines"
)

// RedisRepository is the short-TTL status cache keyed by engine and external
// task id. A miss returns (nil, nil); it is never a correctness mechanism.
type RedisRepository interface {
	GetStatus(ctx context.Context, engine, externalTaskID string) (*engines.StatusResult, error)
	SetStatus(ctx context.Context, engine, externalTaskID string, result *engines.StatusResult) error
	DeleteStatus(ctx context.Context, engine, externalTaskID string) error
}
