package http

import (
	"net/http"
	"net/url"
	"strconv"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/query"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/services"
)

type accountsPage struct {
	services.AccountsView
	Today civil.Date
}

// PageURL keeps the current filters and moves to page n.
func (p accountsPage) PageURL(n int) string {
	v := url.Values{}
	v.Set("date", p.Criteria.Date.String())
	if p.Criteria.SearchTerm != "" {
		v.Set("q", p.Criteria.SearchTerm)
	}
	if p.Criteria.Category != "" && p.Criteria.Category != query.AllCategories {
		v.Set("category", p.Criteria.Category)
	}
	v.Set("page", strconv.Itoa(n))
	return "/accounts?" + v.Encode()
}

func (p accountsPage) HasPrev() bool { return p.Page > 1 }
func (p accountsPage) HasNext() bool { return p.Page < p.TotalPages }

// CanClose reports whether the close-cash button is shown.
func (p accountsPage) CanClose() bool { return p.HasAccount && p.Account.CanCloseCash() }

func (p accountsPage) AllCategories() string { return query.AllCategories }

// handleAccounts renders the day's expense list. HTMX requests get only the
// records fragment.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	c := ParseCriteria(r.URL.Query(), today, s.records.PageSize())

	view, err := s.records.Accounts(r.Context(), c)
	if err != nil {
		s.writeError(w, r, applog.ComponentAccounts, err)
		return
	}

	name := "accounts.html"
	if isHTMX(r) {
		name = "records"
	}
	s.writePage(w, r, http.StatusOK, name, accountsPage{AccountsView: view, Today: today})
}

// handleCloseCash closes the day named by the "date" form value.
func (s *Server) handleCloseCash(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	date, err := core.ParseDate(p.Get("date"))
	if err != nil {
		BadRequestError("A valid date is required").Write(w)
		return
	}

	account, err := s.records.CloseCash(r.Context(), date)
	if err != nil {
		s.writeError(w, r, applog.ComponentAccounts, err)
		return
	}

	applog.FromContext(r.Context()).WithComponent(applog.ComponentAccounts).InfoContext(r.Context(), "Cash closed",
		applog.FieldOperation, applog.OpCloseCash,
		applog.FieldDate, account.Date.String())

	if !isHTMX(r) {
		http.Redirect(w, r, "/accounts?date="+url.QueryEscape(date.String()), http.StatusSeeOther)
		return
	}

	NewHTMXResponse().
		TriggerCashClosed(date.String()).
		TriggerSuccessNotification("Cash closed for " + date.String()).
		Write(w)
}
