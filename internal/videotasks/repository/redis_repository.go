package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clipforge/clipforge-backend/internal/engines"
	"github.com/clipforge/clipforge-backend/internal/videotasks"
	"github.com/go-redis/redis/v8"
)

const defaultStatusPrefix = "video:status:"

type statusCacheRepo struct {
	redisClient *redis.Client
	prefix      string
	ttl         time.Duration
}

// NewStatusCacheRepo builds the short-TTL status cache. Entries expire strictly
// by TTL; cardinality is bounded by concurrently in-flight tasks, so no
// explicit eviction is needed.
func NewStatusCacheRepo(redisClient *redis.Client, prefix string, ttl time.Duration) videotasks.RedisRepository {
	if prefix == "" {
		prefix = defaultStatusPrefix
	}
	return &statusCacheRepo{
		redisClient: redisClient,
		prefix:      prefix,
		ttl:         ttl,
	}
}

func (r *statusCacheRepo) statusKey(engine, externalTaskID string) string {
	return r.prefix + engine + ":" + externalTaskID
}

func (r *statusCacheRepo) GetStatus(ctx context.Context, engine, externalTaskID string) (*engines.StatusResult, error) {
	raw, err := r.redisClient.Get(ctx, r.statusKey(engine, externalTaskID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read status cache: %w", err)
	}
	result := &engines.StatusResult{}
	if err = json.Unmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached status: %w", err)
	}
	return result, nil
}

func (r *statusCacheRepo) SetStatus(ctx context.Context, engine, externalTaskID string, result *engines.StatusResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal status for cache: %w", err)
	}
	if err = r.redisClient.Set(ctx, r.statusKey(engine, externalTaskID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write status cache: %w", err)
	}
	return nil
}

func (r *statusCacheRepo) DeleteStatus(ctx context.Context, engine, externalTaskID string) error {
	if err := r.redisClient.Del(ctx, r.statusKey(engine, externalTaskID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached status: %w", err)
	}
	return nil
}
