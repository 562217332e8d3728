package cache

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

// ExpenseCache holds expense lists per day. A zero date is the full list.
type ExpenseCache interface {
	GetExpenses(ctx context.Context, date civil.Date) ([]core.ExpenseRecord, bool, error)
	SetExpenses(ctx context.Context, date civil.Date, records []core.ExpenseRecord) error
	InvalidateExpenses(ctx context.Context, date civil.Date) error
}

// ExpenseKey is the cache key for a day's expense list.
func ExpenseKey(date civil.Date) string {
	if date.IsZero() {
		return "fortunate:expenses:all"
	}
	return "fortunate:expenses:" + date.String()
}

type NoopExpenseCache struct{}

func (NoopExpenseCache) GetExpenses(_ context.Context, _ civil.Date) ([]core.ExpenseRecord, bool, error) {
	return nil, false, nil
}

func (NoopExpenseCache) SetExpenses(_ context.Context, _ civil.Date, _ []core.ExpenseRecord) error {
	return nil
}

func (NoopExpenseCache) InvalidateExpenses(_ context.Context, _ civil.Date) error { return nil }

// LRUExpenseCache keeps expense lists in process memory.
type LRUExpenseCache struct {
	lru *LRUCache[[]core.ExpenseRecord]
}

func NewLRUExpenseCache(maxDays int, ttl time.Duration) *LRUExpenseCache {
	return &LRUExpenseCache{lru: NewLRUCache[[]core.ExpenseRecord](maxDays, ttl)}
}

func (c *LRUExpenseCache) GetExpenses(_ context.Context, date civil.Date) ([]core.ExpenseRecord, bool, error) {
	records, ok := c.lru.Get(ExpenseKey(date))
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(records), true, nil
}

func (c *LRUExpenseCache) SetExpenses(_ context.Context, date civil.Date, records []core.ExpenseRecord) error {
	c.lru.Set(ExpenseKey(date), slices.Clone(records))
	return nil
}

func (c *LRUExpenseCache) InvalidateExpenses(_ context.Context, date civil.Date) error {
	c.lru.Delete(ExpenseKey(date))
	c.lru.Delete(ExpenseKey(civil.Date{}))
	return nil
}

// CleanExpired lets a Manager sweep the underlying LRU.
func (c *LRUExpenseCache) CleanExpired() int { return c.lru.CleanExpired() }
