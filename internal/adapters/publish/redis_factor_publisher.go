package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stopline-planner-service/internal/domain"
)

// factorRecord is the wire form of one published velocity factor.
type factorRecord struct {
	ModuleID       int64   `json:"module_id"`
	DistanceToStop float64 `json:"distance_to_stop"`
	Status         string  `json:"status"`
}

// RedisFactorPublisher pushes per-cycle velocity factors onto a
// bounded Redis list per module (newest first), for live explanation
// UIs. Keys: velocity_factors:<module_id>.
type RedisFactorPublisher struct {
	client *redis.Client
	maxLen int64
}

func NewRedisFactorPublisher(addr string, maxLen int64) *RedisFactorPublisher {
	if maxLen <= 0 {
		maxLen = 100
	}
	return &RedisFactorPublisher{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		maxLen: maxLen,
	}
}

func (p *RedisFactorPublisher) Publish(ctx context.Context, moduleID int64, f domain.VelocityFactor) error {
	payload, err := json.Marshal(factorRecord{
		ModuleID:       moduleID,
		DistanceToStop: f.DistanceToStop,
		Status:         string(f.Status),
	})
	if err != nil {
		return fmt.Errorf("publish velocity factor: marshal: %w", err)
	}

	key := fmt.Sprintf("velocity_factors:%d", moduleID)

	pipe := p.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, p.maxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish velocity factor: push %s: %w", key, err)
	}

	return nil
}

func (p *RedisFactorPublisher) Close() error { return p.client.Close() }
