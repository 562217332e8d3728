// Package memory is an in-process ports.Store backed by slices. It holds the
// mock data the application starts with when no database is configured.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
)

type Store struct {
	mu       sync.RWMutex
	expenses []core.ExpenseRecord
	accounts map[civil.Date]core.AccountState
	sales    []core.SalesRecord
	team     []core.TeamMember
}

var _ ports.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{accounts: map[civil.Date]core.AccountState{}}
}

// NewFromSeed returns a store holding the seed's records.
func NewFromSeed(seed Seed) *Store {
	s := New()
	s.expenses = slices.Clone(seed.Expenses)
	s.sales = slices.Clone(seed.Sales)
	s.team = slices.Clone(seed.Team)
	for _, a := range seed.Accounts {
		s.accounts[a.Date] = a
	}
	return s
}

// AddExpense appends an expense record after validating it.
func (s *Store) AddExpense(_ context.Context, e core.ExpenseRecord) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("expense %s: %w", e.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *Store) ListExpenses(_ context.Context, date civil.Date) ([]core.ExpenseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.ExpenseRecord, 0, len(s.expenses))
	for _, e := range s.expenses {
		if date.IsZero() || e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) GetAccount(_ context.Context, date civil.Date) (core.AccountState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[date]
	if !ok {
		return core.AccountState{}, fmt.Errorf("account %s: %w", date, ports.ErrNotFound)
	}
	return a, nil
}

func (s *Store) SaveAccount(_ context.Context, a core.AccountState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.accounts[a.Date]; ok && prev.IsClosed && !a.IsClosed {
		return fmt.Errorf("account %s: %w", a.Date, core.ErrAccountClosed)
	}
	s.accounts[a.Date] = a
	return nil
}

func (s *Store) SaveSale(_ context.Context, r core.SalesRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = upsert(s.sales, r, func(x core.SalesRecord) string { return x.ID })
	return nil
}

func (s *Store) GetSale(_ context.Context, id string) (core.SalesRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.sales {
		if r.ID == id {
			return r, nil
		}
	}
	return core.SalesRecord{}, fmt.Errorf("sale %s: %w", id, ports.ErrNotFound)
}

func (s *Store) ListSales(_ context.Context) ([]core.SalesRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sales), nil
}

func (s *Store) SaveTeamMember(_ context.Context, m core.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.team = upsert(s.team, m, func(x core.TeamMember) string { return x.ID })
	return nil
}

func (s *Store) GetTeamMember(_ context.Context, id string) (core.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.team {
		if m.ID == id {
			return m, nil
		}
	}
	return core.TeamMember{}, fmt.Errorf("team member %s: %w", id, ports.ErrNotFound)
}

func (s *Store) ListTeamMembers(_ context.Context) ([]core.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.team), nil
}

// upsert replaces the element with the same key in place or appends.
func upsert[T any](items []T, v T, key func(T) string) []T {
	for i := range items {
		if key(items[i]) == key(v) {
			items[i] = v
			return items
		}
	}
	return append(items, v)
}
