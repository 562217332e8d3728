package google

import (
	"time"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

// Column headers of the mirrored tabs, in row order.
var (
	SalesHeader = []any{"ID", "Date", "Product", "Product ID", "Category", "Size", "LC Number",
		"Customer", "Quantity", "Unit", "Price", "Total", "Invoice Status", "Notes", "Mirrored At"}
	TeamHeader = []any{"ID", "Name", "Phone", "Role", "Location", "Status", "Avatar", "Mirrored At"}
)

// SaleRow lays out a sale for the sales tab. Total is derived, not stored.
func SaleRow(s core.SalesRecord, at time.Time) []any {
	date := ""
	if s.Date != nil {
		date = s.Date.String()
	}
	return []any{
		s.ID, date, s.ProductName, s.ProductID, s.Category, s.Size, s.LCNumber,
		s.Customer, s.Quantity.Decimal().String(), s.Unit, s.Price.String(),
		s.TotalAmount().String(), string(s.InvoiceStatus), s.Notes, at.UTC().Format(time.RFC3339),
	}
}

// TeamMemberRow lays out a member for the team tab.
func TeamMemberRow(m core.TeamMember, at time.Time) []any {
	return []any{
		m.ID, m.Name, m.Phone, string(m.Role), m.Location, string(m.Status), m.Avatar,
		at.UTC().Format(time.RFC3339),
	}
}
