package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/cache"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/query"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/store/memory"
)

var today = civil.Date{Year: 2025, Month: time.June, Day: 10}

type fakePublisher struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakePublisher) PublishRecordSubmitted(_ context.Context, kind ports.RecordKind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, string(kind)+":"+id)
	return nil
}

type countingStore struct {
	*memory.Store
	lists atomic.Int32
}

func (c *countingStore) ListExpenses(ctx context.Context, date civil.Date) ([]core.ExpenseRecord, error) {
	c.lists.Add(1)
	return c.Store.ListExpenses(ctx, date)
}

// blockingStore holds ListExpenses until release is closed or the read's
// context ends.
type blockingStore struct {
	*memory.Store
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingStore) ListExpenses(ctx context.Context, date civil.Date) ([]core.ExpenseRecord, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
		return b.Store.ListExpenses(ctx, date)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func newService(opts ...Option) (*RecordService, *memory.Store) {
	store := memory.NewFromSeed(memory.MockSeed(today))
	return NewRecordService(store, opts...), store
}

func TestSubmitSalePublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc, store := newService(WithPublisher(pub))
	ctx := context.Background()

	sale := core.SalesRecord{ID: "s-new", ProductName: "Jute", LCNumber: "LC-9", Quantity: core.MustMoney("2"),
		Price: core.MustMoney("4"), Customer: "C", Unit: "bale", InvoiceStatus: core.Pending}
	if err := svc.SubmitSale(ctx, sale); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := store.GetSale(ctx, "s-new"); err != nil {
		t.Fatalf("sale not stored: %v", err)
	}
	if len(pub.sent) != 1 || pub.sent[0] != "sale:s-new" {
		t.Fatalf("published %v", pub.sent)
	}
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc, store := newService(WithPublisher(pub))
	ctx := context.Background()

	m := core.TeamMember{ID: "tm-9", Name: "N", Phone: "+880 1000-000000", Role: core.RoleAdmin, Location: "L", Status: core.StatusActive}
	if err := svc.SubmitTeamMember(ctx, m); err != nil {
		t.Fatalf("publish failure must not fail submit: %v", err)
	}
	if _, err := store.GetTeamMember(ctx, "tm-9"); err != nil {
		t.Fatalf("member not stored: %v", err)
	}
}

func TestAccountsView(t *testing.T) {
	svc, _ := newService(WithPageSize(4))
	v, err := svc.Accounts(context.Background(), query.Criteria{Date: today, Page: 2})
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if v.TotalCount != 6 || v.TotalPages != 2 || v.Page != 2 || len(v.Visible) != 2 {
		t.Fatalf("paging: %+v", v.View)
	}
	// 1850 + 350 + 2400 + 5200 + 3000 + 650
	if v.TotalExpensesToday.String() != "13450.00" || v.Remaining.String() != "11550.00" {
		t.Fatalf("totals: %s remaining %s", v.TotalExpensesToday, v.Remaining)
	}
	if !v.HasAccount || len(v.Categories) != 5 || v.Criteria.Page != 2 {
		t.Fatalf("unexpected view: has=%v cats=%v", v.HasAccount, v.Categories)
	}

	empty, err := svc.Accounts(context.Background(), query.Criteria{Date: today.AddDays(30)})
	if err != nil {
		t.Fatalf("empty day: %v", err)
	}
	if !empty.NoRecords || empty.TotalPages != 1 || empty.HasAccount || !empty.Remaining.IsZero() {
		t.Fatalf("empty day view: %+v", empty.View)
	}
}

func TestCloseCash(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	a, err := svc.CloseCash(ctx, today)
	if err != nil || !a.IsClosed {
		t.Fatalf("close: %+v err=%v", a, err)
	}
	if _, err := svc.CloseCash(ctx, today); !errors.Is(err, core.ErrAccountClosed) {
		t.Fatalf("second close: %v", err)
	}
	if _, err := svc.CloseCash(ctx, today.AddDays(5)); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("unknown day: %v", err)
	}
}

func TestExpensesUsesCache(t *testing.T) {
	store := &countingStore{Store: memory.NewFromSeed(memory.MockSeed(today))}
	svc := NewRecordService(store, WithExpenseCache(cache.NewLRUExpenseCache(8, time.Minute)))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		records, err := svc.Expenses(ctx, today)
		if err != nil || len(records) != 6 {
			t.Fatalf("expenses: %d err=%v", len(records), err)
		}
	}
	if got := store.lists.Load(); got != 1 {
		t.Fatalf("store read %d times, want 1", got)
	}
}

func TestExpensesSharedLoadSurvivesCallerCancel(t *testing.T) {
	store := &blockingStore{
		Store:   memory.NewFromSeed(memory.MockSeed(today)),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewRecordService(store)

	type result struct {
		records []core.ExpenseRecord
		err     error
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	first := make(chan result, 1)
	go func() {
		records, err := svc.Expenses(ctxA, today)
		first <- result{records, err}
	}()
	<-store.started

	second := make(chan result, 1)
	go func() {
		records, err := svc.Expenses(context.Background(), today)
		second <- result{records, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case got := <-first:
		if !errors.Is(got.err, context.Canceled) {
			t.Fatalf("cancelled caller err = %v, want context.Canceled", got.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller still waiting on the shared load")
	}

	close(store.release)
	select {
	case got := <-second:
		if got.err != nil {
			t.Fatalf("second caller err = %v", got.err)
		}
		if len(got.records) != 6 {
			t.Fatalf("second caller got %d records, want 6", len(got.records))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never returned")
	}
}

func TestListingsPaginate(t *testing.T) {
	svc, _ := newService(WithPageSize(2))
	ctx := context.Background()

	team, err := svc.Team(ctx, 9)
	if err != nil {
		t.Fatalf("team: %v", err)
	}
	if team.Page != 2 || team.TotalPages != 2 || len(team.Items) != 1 {
		t.Fatalf("team page: %+v", team)
	}
	sales, err := svc.Sales(ctx, 1)
	if err != nil || len(sales.Items) != 2 || sales.HasNext() {
		t.Fatalf("sales page: %+v err=%v", sales, err)
	}
}
