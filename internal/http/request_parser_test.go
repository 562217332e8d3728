package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/query"
)

var testToday = civil.Date{Year: 2025, Month: time.June, Day: 10}

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   query.Criteria
	}{
		{
			name:   "defaults",
			values: url.Values{},
			want:   query.Criteria{Date: testToday, Category: query.AllCategories, Page: 1, PageSize: 10},
		},
		{
			name:   "all values provided",
			values: url.Values{"date": {"2025-06-09"}, "q": {"  lunch "}, "category": {"Food"}, "page": {"3"}},
			want:   query.Criteria{Date: civil.Date{Year: 2025, Month: time.June, Day: 9}, SearchTerm: "lunch", Category: "Food", Page: 3, PageSize: 10},
		},
		{
			name:   "invalid values fall back",
			values: url.Values{"date": {"09/06/2025"}, "page": {"-2"}},
			want:   query.Criteria{Date: testToday, Category: query.AllCategories, Page: 1, PageSize: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCriteria(tt.values, testToday, 10); got != tt.want {
				t.Errorf("ParseCriteria() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	for in, want := range map[string]int{"": 1, "0": 1, "abc": 1, "7": 7, " 2 ": 2} {
		if got := ParsePage(in); got != want {
			t.Errorf("ParsePage(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestRequestBodyParser_JSON(t *testing.T) {
	body := `{"productName": "Jute", "quantity": 42.5, "notes": "\u0007bell"}`
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !parser.IsJSON() {
		t.Error("Expected IsJSON() to be true")
	}

	var d core.SalesDraft
	d.InvoiceStatus = core.Pending
	SalesDraftFrom(parser, &d)
	if d.ProductName != "Jute" || d.Quantity != "42.5" || d.Notes != "bell" {
		t.Errorf("draft = %+v", d)
	}
	if d.InvoiceStatus != core.Pending {
		t.Errorf("missing invoice status must keep the default, got %q", d.InvoiceStatus)
	}
}

func TestRequestBodyParser_FormData(t *testing.T) {
	body := "name=Nadia+Islam&phone=%2B880+1234-567890&role=Admin&location=Dhaka"
	req := httptest.NewRequest(http.MethodPost, "/team", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parser.IsJSON() {
		t.Error("Expected IsJSON() to be false for form data")
	}

	d := core.TeamMemberDraft{Avatar: "/avatars/old.png"}
	TeamMemberDraftFrom(parser, &d)
	if d.Name != "Nadia Islam" || d.Phone != "+880 1234-567890" || d.Role != "Admin" {
		t.Errorf("draft = %+v", d)
	}
	if d.Avatar != "/avatars/old.png" {
		t.Errorf("avatar must be kept when none is sent, got %q", d.Avatar)
	}
}

func TestRequestBodyParser_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"productName":`))
	req.Header.Set("Content-Type", "application/json")
	if err := NewRequestBodyParser(req).Parse(); err == nil {
		t.Fatal("expected JSON error")
	}
}

func TestRequestBodyParser_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(""))

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if val := parser.Get("nonexistent"); val != "" {
		t.Errorf("Get('nonexistent') = %q, want empty string", val)
	}
}
