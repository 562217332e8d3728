package google

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

func TestNewFromEnv_MissingSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")

	_, err := NewFromEnv(context.Background())
	if err == nil || err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewFromEnv_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatal("expected credentials error")
	}
}

func TestAppendRowWithoutService(t *testing.T) {
	c := &Client{}
	if _, err := c.AppendRow(context.Background(), "Sales", []any{"x"}); err == nil {
		t.Fatal("expected error without service")
	}
}

func TestYearPrefixedName(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"Sales", "2025 Sales"},
		{"2024 Sales", "2024 Sales"},
		{"  Team ", "2025 Team"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := yearPrefixedName(tc.base, 2025); got != tc.want {
			t.Fatalf("yearPrefixedName(%q) = %q want %q", tc.base, got, tc.want)
		}
	}
}

func TestSaleRow(t *testing.T) {
	at := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	date := civil.Date{Year: 2025, Month: time.May, Day: 30}
	s := core.SalesRecord{
		ID: "s1", ProductName: "Cotton", LCNumber: "LC-1",
		Quantity: core.MustMoney("10"), Price: core.MustMoney("2.5"),
		Customer: "Acme", Unit: "kg", InvoiceStatus: core.Invoiced, Date: &date,
	}
	row := SaleRow(s, at)
	if len(row) != len(SalesHeader) {
		t.Fatalf("row has %d cells, header %d", len(row), len(SalesHeader))
	}
	if row[1] != "2025-05-30" || row[8] != "10" || row[10] != "2.50" || row[11] != "25.00" || row[12] != "invoiced" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[14] != "2025-06-01T08:30:00Z" {
		t.Fatalf("timestamp: %v", row[14])
	}

	s.Date = nil
	if SaleRow(s, at)[1] != "" {
		t.Fatal("missing date should be blank")
	}
}

func TestTeamMemberRow(t *testing.T) {
	m := core.TeamMember{ID: "tm-1", Name: "Rahim", Phone: "+880 1711-234567", Role: core.RoleManager,
		Location: "Dhaka", Status: core.StatusActive, Avatar: "/avatars/rahim.png"}
	row := TeamMemberRow(m, time.Unix(0, 0))
	if len(row) != len(TeamHeader) || row[3] != "Manager" || row[5] != "Active" {
		t.Fatalf("unexpected row: %v", row)
	}
}
