package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	redis "github.com/redis/go-redis/v9"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

// RedisExpenseCache stores expense lists as JSON under ExpenseKey.
type RedisExpenseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisExpenseCache(addr, password string, db int, ttl time.Duration) *RedisExpenseCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisExpenseCache{client: client, ttl: ttl}
}

func (c *RedisExpenseCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisExpenseCache) Close() error {
	return c.client.Close()
}

func (c *RedisExpenseCache) GetExpenses(ctx context.Context, date civil.Date) ([]core.ExpenseRecord, bool, error) {
	val, err := c.client.Get(ctx, ExpenseKey(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", ExpenseKey(date), err)
	}
	var records []core.ExpenseRecord
	if err := json.Unmarshal(val, &records); err != nil {
		return nil, false, fmt.Errorf("decode cached expenses: %w", err)
	}
	return records, true, nil
}

func (c *RedisExpenseCache) SetExpenses(ctx context.Context, date civil.Date, records []core.ExpenseRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	return c.client.Set(ctx, ExpenseKey(date), payload, c.ttl).Err()
}

func (c *RedisExpenseCache) InvalidateExpenses(ctx context.Context, date civil.Date) error {
	return c.client.Del(ctx, ExpenseKey(date), ExpenseKey(civil.Date{})).Err()
}
