package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/sync/singleflight"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/cache"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/query"
)

const expenseLoadTimeout = 30 * time.Second

// RecordService orchestrates the store, the expense cache and the
// record-submitted publisher.
type RecordService struct {
	store     ports.Store
	publisher ports.Publisher
	expenses  cache.ExpenseCache
	loads     singleflight.Group
	pageSize  int
}

type Option func(*RecordService)

// WithPublisher enables record-submitted messages. Without it submits are
// only stored.
func WithPublisher(p ports.Publisher) Option {
	return func(s *RecordService) { s.publisher = p }
}

func WithExpenseCache(c cache.ExpenseCache) Option {
	return func(s *RecordService) {
		if c != nil {
			s.expenses = c
		}
	}
}

func WithPageSize(n int) Option {
	return func(s *RecordService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func NewRecordService(store ports.Store, opts ...Option) *RecordService {
	s := &RecordService{
		store:    store,
		expenses: cache.NoopExpenseCache{},
		pageSize: query.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RecordService) PageSize() int { return s.pageSize }

// SubmitSale stores the sale and announces it. A failed announcement is
// logged; the sale stays saved.
func (s *RecordService) SubmitSale(ctx context.Context, r core.SalesRecord) error {
	if err := s.store.SaveSale(ctx, r); err != nil {
		return fmt.Errorf("save sale: %w", err)
	}
	s.publish(ctx, ports.KindSale, r.ID)
	return nil
}

// SubmitTeamMember stores the member and announces it.
func (s *RecordService) SubmitTeamMember(ctx context.Context, m core.TeamMember) error {
	if err := s.store.SaveTeamMember(ctx, m); err != nil {
		return fmt.Errorf("save team member: %w", err)
	}
	s.publish(ctx, ports.KindTeamMember, m.ID)
	return nil
}

func (s *RecordService) publish(ctx context.Context, kind ports.RecordKind, id string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No publisher configured, skipping record message", "kind", kind, "id", id)
		return
	}
	if err := s.publisher.PublishRecordSubmitted(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record message", "kind", kind, "id", id, "error", err)
	}
}

// Expenses returns the expense list for date, served from cache when
// possible. Concurrent loads of the same date share one store read.
func (s *RecordService) Expenses(ctx context.Context, date civil.Date) ([]core.ExpenseRecord, error) {
	if records, ok, err := s.expenses.GetExpenses(ctx, date); err != nil {
		slog.WarnContext(ctx, "Expense cache read failed", "date", date.String(), "error", err)
	} else if ok {
		return records, nil
	}

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own context ends.
	ch := s.loads.DoChan(cache.ExpenseKey(date), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), expenseLoadTimeout)
		defer cancel()
		records, err := s.store.ListExpenses(loadCtx, date)
		if err != nil {
			return nil, err
		}
		if err := s.expenses.SetExpenses(loadCtx, date, records); err != nil {
			slog.WarnContext(loadCtx, "Expense cache write failed", "date", date.String(), "error", err)
		}
		return records, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("list expenses: %w", ctx.Err())
	}
	if res.Err != nil {
		return nil, fmt.Errorf("list expenses: %w", res.Err)
	}
	return res.Val.([]core.ExpenseRecord), nil
}

// AccountsView is the accounts page model.
type AccountsView struct {
	query.View
	Criteria   query.Criteria
	Account    core.AccountState
	HasAccount bool
	Categories []string
}

// Accounts runs the query engine over the expenses of c.Date against that
// day's starting cash. A day without an account state counts from zero.
func (s *RecordService) Accounts(ctx context.Context, c query.Criteria) (AccountsView, error) {
	if c.PageSize <= 0 {
		c.PageSize = s.pageSize
	}
	records, err := s.Expenses(ctx, c.Date)
	if err != nil {
		return AccountsView{}, err
	}

	account, err := s.store.GetAccount(ctx, c.Date)
	hasAccount := err == nil
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return AccountsView{}, fmt.Errorf("get account: %w", err)
	}
	if !hasAccount {
		account = core.AccountState{Date: c.Date}
	}

	view := query.Run(records, c, account.TodayStartingCash)
	c.Page = view.Page
	return AccountsView{
		View:       view,
		Criteria:   c,
		Account:    account,
		HasAccount: hasAccount,
		Categories: query.Categories(records),
	}, nil
}

// CloseCash closes the day. Closing twice returns core.ErrAccountClosed.
func (s *RecordService) CloseCash(ctx context.Context, date civil.Date) (core.AccountState, error) {
	account, err := s.store.GetAccount(ctx, date)
	if err != nil {
		return core.AccountState{}, fmt.Errorf("close cash: %w", err)
	}
	if err := account.Close(); err != nil {
		return account, fmt.Errorf("close cash %s: %w", date, err)
	}
	if err := s.store.SaveAccount(ctx, account); err != nil {
		return core.AccountState{}, fmt.Errorf("close cash: %w", err)
	}
	slog.InfoContext(ctx, "Cash closed", "date", date.String())
	return account, nil
}

func (s *RecordService) Sale(ctx context.Context, id string) (core.SalesRecord, error) {
	return s.store.GetSale(ctx, id)
}

func (s *RecordService) TeamMember(ctx context.Context, id string) (core.TeamMember, error) {
	return s.store.GetTeamMember(ctx, id)
}

// Sales returns one page of sales in insertion order.
func (s *RecordService) Sales(ctx context.Context, page int) (query.Page[core.SalesRecord], error) {
	all, err := s.store.ListSales(ctx)
	if err != nil {
		return query.Page[core.SalesRecord]{}, fmt.Errorf("list sales: %w", err)
	}
	return query.Paginate(all, page, s.pageSize), nil
}

// Team returns one page of team members in insertion order.
func (s *RecordService) Team(ctx context.Context, page int) (query.Page[core.TeamMember], error) {
	all, err := s.store.ListTeamMembers(ctx)
	if err != nil {
		return query.Page[core.TeamMember]{}, fmt.Errorf("list team members: %w", err)
	}
	return query.Paginate(all, page, s.pageSize), nil
}
