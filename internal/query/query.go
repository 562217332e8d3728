// Package query turns a list of expense records plus user criteria into a
// sorted, paginated view with totals. Everything here is a pure function of
// its inputs; nothing is cached between calls.
package query

import (
	"slices"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

const (
	// DefaultPageSize is used when Criteria.PageSize is not positive.
	DefaultPageSize = 10
	// AllCategories disables the category filter.
	AllCategories = "all"
)

// Criteria narrows and pages a record list. A zero Date matches every day.
type Criteria struct {
	Date       civil.Date
	SearchTerm string
	Category   string
	Page       int
	PageSize   int
}

// View is the result of Run.
type View struct {
	Visible            []core.ExpenseRecord
	TotalCount         int
	TotalPages         int
	Page               int
	PageSize           int
	NoRecords          bool
	TotalExpensesToday core.Money
	Remaining          core.Money
}

// Run filters, sorts and paginates records and computes the day's totals.
// The input slice is never modified.
func Run(records []core.ExpenseRecord, c Criteria, todayStartingCash core.Money) View {
	filtered := Filter(records, c)
	Sort(filtered)

	total := core.Money{}
	for _, r := range filtered {
		total = total.Add(r.Amount)
	}

	p := Paginate(filtered, c.Page, c.PageSize)
	return View{
		Visible:            p.Items,
		TotalCount:         p.TotalCount,
		TotalPages:         p.TotalPages,
		Page:               p.Page,
		PageSize:           p.PageSize,
		NoRecords:          len(filtered) == 0,
		TotalExpensesToday: total,
		Remaining:          todayStartingCash.Sub(total),
	}
}

// Filter applies the date, search and category filters in that order and
// returns a new slice. Records keep their input order.
func Filter(records []core.ExpenseRecord, c Criteria) []core.ExpenseRecord {
	term := strings.ToLower(strings.TrimSpace(c.SearchTerm))
	category := strings.TrimSpace(c.Category)
	if category == AllCategories {
		category = ""
	}

	out := make([]core.ExpenseRecord, 0, len(records))
	for _, r := range records {
		if !c.Date.IsZero() && r.Date != c.Date {
			continue
		}
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesTerm(r core.ExpenseRecord, term string) bool {
	return strings.Contains(strings.ToLower(r.Description), term) ||
		strings.Contains(strings.ToLower(r.Category), term)
}

// Sort orders records newest first. Records sharing an instant keep their
// relative order.
func Sort(records []core.ExpenseRecord) {
	slices.SortStableFunc(records, func(a, b core.ExpenseRecord) int {
		return b.Instant().Compare(a.Instant())
	})
}

// Categories returns the distinct categories in first-seen order.
func Categories(records []core.ExpenseRecord) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Category]; ok || r.Category == "" {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
