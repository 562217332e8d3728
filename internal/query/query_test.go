package query

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

var (
	day1 = civil.Date{Year: 2025, Month: time.June, Day: 1}
	day2 = civil.Date{Year: 2025, Month: time.June, Day: 2}
)

func rec(id string, d civil.Date, clock, category, desc, amount string) core.ExpenseRecord {
	return core.ExpenseRecord{
		ID: id, Date: d, Time: clock, Category: category,
		Description: desc, Amount: core.MustMoney(amount),
	}
}

func fixture() []core.ExpenseRecord {
	return []core.ExpenseRecord{
		rec("a", day1, "09:00", "Office", "Printer paper", "12.50"),
		rec("b", day1, "14:30", "Transport", "Taxi to port", "30"),
		rec("c", day2, "08:00", "Office", "Pens", "4"),
		rec("d", day1, "11:15", "Food", "Team lunch", "45.25"),
		rec("e", day1, "14:30", "Office", "Toner", "60"),
		rec("f", day1, "2:30 PM", "Transport", "Courier", "8"),
	}
}

func ids(rs []core.ExpenseRecord) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestRunFiltersAndSorts(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"date only", Criteria{Date: day1}, []string{"b", "e", "f", "d", "a"}},
		{"search description", Criteria{Date: day1, SearchTerm: "  TAXI "}, []string{"b"}},
		{"search category", Criteria{Date: day1, SearchTerm: "office"}, []string{"e", "a"}},
		{"category", Criteria{Date: day1, Category: "Transport"}, []string{"b", "f"}},
		{"category all", Criteria{Date: day1, Category: "all"}, []string{"b", "e", "f", "d", "a"}},
		{"blank search", Criteria{Date: day2, SearchTerm: "   "}, []string{"c"}},
		{"no date", Criteria{Category: "Office"}, []string{"c", "e", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Run(fixture(), tt.c, core.Money{})
			if got := ids(v.Visible); !slices.Equal(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestRunEmptyDay(t *testing.T) {
	empty := civil.Date{Year: 2024, Month: time.January, Day: 9}
	v := Run(fixture(), Criteria{Date: empty, Page: 3}, core.MustMoney("100"))
	if len(v.Visible) != 0 || !v.NoRecords {
		t.Fatalf("expected no records, got %v", ids(v.Visible))
	}
	if v.TotalPages != 1 || v.Page != 1 {
		t.Fatalf("expected page 1 of 1, got %d of %d", v.Page, v.TotalPages)
	}
	if v.Remaining.String() != "100.00" {
		t.Fatalf("remaining: got %s", v.Remaining)
	}
}

func TestRunTotals(t *testing.T) {
	cash := core.MustMoney("100")
	v := Run(fixture(), Criteria{Date: day1, PageSize: 2}, cash)

	sum := core.Money{}
	for _, r := range Filter(fixture(), Criteria{Date: day1}) {
		sum = sum.Add(r.Amount)
	}
	if !v.TotalExpensesToday.Equal(sum) || v.TotalExpensesToday.String() != "155.75" {
		t.Fatalf("total: got %s want %s", v.TotalExpensesToday, sum)
	}
	if !v.Remaining.Equal(cash.Sub(sum)) || !v.Remaining.IsNegative() {
		t.Fatalf("remaining: got %s", v.Remaining)
	}
	if v.TotalCount != 5 || v.TotalPages != 3 || len(v.Visible) != 2 {
		t.Fatalf("paging: count=%d pages=%d visible=%d", v.TotalCount, v.TotalPages, len(v.Visible))
	}
}

func TestFilterIdempotent(t *testing.T) {
	c := Criteria{Date: day1, SearchTerm: "o", Category: "Office"}
	once := Filter(fixture(), c)
	twice := Filter(once, c)
	if !slices.Equal(ids(once), ids(twice)) {
		t.Fatalf("once %v twice %v", ids(once), ids(twice))
	}
}

func TestFilterAllSentinelIsExact(t *testing.T) {
	in := append(fixture(), rec("g", day1, "10:00", "All", "Shared supplies", "5"))

	tests := []struct {
		category string
		want     []string
	}{
		{AllCategories, []string{"a", "b", "d", "e", "f", "g"}},
		{"All", []string{"g"}},
		{"ALL", nil},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := ids(Filter(in, Criteria{Date: day1, Category: tt.category}))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Filter(category=%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := ids(in)
	_ = Run(in, Criteria{Date: day1}, core.Money{})
	if !slices.Equal(before, ids(in)) {
		t.Fatalf("input reordered: %v", ids(in))
	}
}

func TestSortStable(t *testing.T) {
	var rs []core.ExpenseRecord
	for i := 0; i < 20; i++ {
		rs = append(rs, rec(fmt.Sprintf("r%02d", i), day1, "10:00", "X", "same", "1"))
	}
	want := ids(rs)
	for round := 0; round < 3; round++ {
		v := Run(rs, Criteria{Date: day1, PageSize: 100}, core.Money{})
		if got := ids(v.Visible); !slices.Equal(got, want) {
			t.Fatalf("round %d reordered ties: %v", round, got)
		}
	}
}

func TestPaginationPartitions(t *testing.T) {
	var rs []core.ExpenseRecord
	for i := 0; i < 23; i++ {
		rs = append(rs, rec(fmt.Sprintf("r%02d", i), day1, fmt.Sprintf("%02d:00", i), "X", "d", "1"))
	}
	all := Run(rs, Criteria{Date: day1, PageSize: 100}, core.Money{})

	for _, size := range []int{1, 5, 7, 10, 23, 50} {
		first := Run(rs, Criteria{Date: day1, PageSize: size, Page: 1}, core.Money{})
		var joined []string
		for p := 1; p <= first.TotalPages; p++ {
			v := Run(rs, Criteria{Date: day1, PageSize: size, Page: p}, core.Money{})
			joined = append(joined, ids(v.Visible)...)
		}
		if !slices.Equal(joined, ids(all.Visible)) {
			t.Fatalf("size %d: pages do not partition: %v", size, joined)
		}
	}
}

func TestPaginateClamp(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		page, size int
		wantPage   int
		want       []int
	}{
		{0, 2, 1, []int{1, 2}},
		{-4, 2, 1, []int{1, 2}},
		{3, 2, 3, []int{5}},
		{99, 2, 3, []int{5}},
		{1, 0, 1, []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		p := Paginate(items, tt.page, tt.size)
		if p.Page != tt.wantPage || !slices.Equal(p.Items, tt.want) {
			t.Fatalf("page %d size %d: got page %d items %v", tt.page, tt.size, p.Page, p.Items)
		}
	}
	if got := TotalPages(0, 10); got != 1 {
		t.Fatalf("TotalPages(0) = %d", got)
	}
}

func TestCategories(t *testing.T) {
	got := Categories(fixture())
	want := []string{"Office", "Transport", "Food"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
