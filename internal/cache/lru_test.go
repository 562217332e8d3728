package cache

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

func TestLRUEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should be evicted as least recently used")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("a: %v %v", v, ok)
	}
	if c.Size() != 2 {
		t.Fatalf("size %d", c.Size())
	}
	c.Purge()
	if c.Size() != 0 {
		t.Fatalf("purge left %d", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewLRUCache[string](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	c.Set("k2", "v2")
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expired entry returned")
	}
	if removed := c.CleanExpired(); removed != 1 {
		t.Fatalf("CleanExpired removed %d", removed)
	}
	if c.Size() != 0 {
		t.Fatalf("size %d", c.Size())
	}
}

func TestManagerCleanAll(t *testing.T) {
	c := NewLRUCache[int](10, -time.Second)
	c.Set("x", 1)
	m := NewManager()
	m.Register(c)
	if n := m.CleanAll(); n != 1 {
		t.Fatalf("cleaned %d", n)
	}
	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()
}

func TestLRUExpenseCache(t *testing.T) {
	ctx := context.Background()
	day := civil.Date{Year: 2025, Month: time.June, Day: 1}
	c := NewLRUExpenseCache(4, time.Minute)

	if _, ok, _ := c.GetExpenses(ctx, day); ok {
		t.Fatalf("empty cache hit")
	}
	in := []core.ExpenseRecord{{ID: "e1", Date: day, Amount: core.MustMoney("5")}}
	_ = c.SetExpenses(ctx, day, in)
	in[0].ID = "mutated"

	got, ok, err := c.GetExpenses(ctx, day)
	if err != nil || !ok || len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("got %+v ok=%v err=%v", got, ok, err)
	}
	_ = c.InvalidateExpenses(ctx, day)
	if _, ok, _ := c.GetExpenses(ctx, day); ok {
		t.Fatalf("invalidated entry returned")
	}
	if ExpenseKey(day) != "fortunate:expenses:2025-06-01" {
		t.Fatalf("key %s", ExpenseKey(day))
	}
}
