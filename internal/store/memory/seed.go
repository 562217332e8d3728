package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

// Seed is the initial data set, also the JSON layout of a seed file.
type Seed struct {
	Expenses []core.ExpenseRecord `json:"expenses"`
	Accounts []core.AccountState  `json:"accounts"`
	Sales    []core.SalesRecord   `json:"sales"`
	Team     []core.TeamMember    `json:"team"`
}

// LoadSeed reads a JSON seed file. A missing file yields MockSeed(today).
func LoadSeed(path string, today civil.Date) (Seed, error) {
	if path == "" {
		return MockSeed(today), nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return MockSeed(today), nil
	}
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	var seed Seed
	if err := json.Unmarshal(b, &seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed %s: %w", path, err)
	}
	for _, e := range seed.Expenses {
		if err := e.Validate(); err != nil {
			return Seed{}, fmt.Errorf("seed expense %s: %w", e.ID, err)
		}
	}
	return seed, nil
}

// MockSeed returns demo records for today and the day before.
func MockSeed(today civil.Date) Seed {
	yesterday := today.AddDays(-1)
	exp := func(id string, d civil.Date, clock, category, icon, desc, amount, method string) core.ExpenseRecord {
		return core.ExpenseRecord{
			ID: id, Date: d, Time: clock, Category: category, Icon: icon,
			Description: desc, Amount: core.MustMoney(amount), PaymentMethod: method,
		}
	}
	orderDate := yesterday
	return Seed{
		Expenses: []core.ExpenseRecord{
			exp("exp-001", today, "09:15", "Office Supplies", "office", "Printer paper and toner", "1850", "Cash"),
			exp("exp-002", today, "10:40", "Transport", "transport", "CNG fare to port office", "350", "Cash"),
			exp("exp-003", today, "12:05", "Food", "food", "Staff lunch", "2400", "bKash"),
			exp("exp-004", today, "14:30", "Utilities", "utilities", "Electricity bill", "5200", "Bank Transfer"),
			exp("exp-005", today, "15:10", "Maintenance", "maintenance", "AC servicing", "3000", "Cash"),
			exp("exp-006", today, "16:45", "Transport", "transport", "Courier to Chattogram", "650", "Cash"),
			exp("exp-007", yesterday, "11:00", "Office Supplies", "office", "Ledger books", "420", "Cash"),
			exp("exp-008", yesterday, "17:20", "Food", "food", "Tea and snacks", "260", "Cash"),
		},
		Accounts: []core.AccountState{
			{Date: today, StartingCash: core.MustMoney("50000"), TodayStartingCash: core.MustMoney("25000")},
			{Date: yesterday, StartingCash: core.MustMoney("50000"), TodayStartingCash: core.MustMoney("20000"), IsClosed: true},
		},
		Sales: []core.SalesRecord{
			{
				ID: "sale-001", ProductName: "Cotton Yarn 30s", LCNumber: "LC-2025-0147",
				Quantity: core.MustMoney("1200"), Price: core.MustMoney("3.45"),
				Customer: "Padma Textiles", Unit: "kg", InvoiceStatus: core.Invoiced,
				ProductID: "CY-30", Category: "Yarn", Date: &orderDate,
			},
			{
				ID: "sale-002", ProductName: "Denim Fabric", LCNumber: "LC-2025-0152",
				Quantity: core.MustMoney("800"), Price: core.MustMoney("5.10"),
				Customer: "Meghna Garments", Unit: "yard", InvoiceStatus: core.Pending,
				Size: "58 inch",
			},
		},
		Team: []core.TeamMember{
			{ID: "tm-001", Name: "Rahim Uddin", Phone: "+880 1711-234567", Role: core.RoleManager, Location: "Dhaka", Status: core.StatusActive, Avatar: "/avatars/rahim-uddin.png"},
			{ID: "tm-002", Name: "Ayesha Khan", Phone: "+880 1819-765432", Role: core.RoleAccountant, Location: "Chattogram", Status: core.StatusActive, Avatar: "/avatars/ayesha-khan.png"},
			{ID: "tm-003", Name: "Karim Hossain", Phone: "+880 1552-112233", Role: core.RoleWarehouse, Location: "Narayanganj", Status: core.StatusSuspended, Avatar: "/avatars/karim-hossain.png"},
		},
	}
}
