package core

import (
	"strings"

	"cloud.google.com/go/civil"
)

// InvoiceStatus is the billing state of a sale.
type InvoiceStatus string

const (
	Invoiced    InvoiceStatus = "invoiced"
	NotInvoiced InvoiceStatus = "not-invoiced"
	Pending     InvoiceStatus = "pending"
)

var InvoiceStatuses = []InvoiceStatus{Invoiced, NotInvoiced, Pending}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case Invoiced, NotInvoiced, Pending:
		return true
	}
	return false
}

// SalesDraft holds the sales form fields as typed.
type SalesDraft struct {
	ID            string
	ProductName   string
	LCNumber      string
	Quantity      string
	Price         string
	Customer      string
	Unit          string
	InvoiceStatus InvoiceStatus
	ProductID     string
	Category      string
	Size          string
	Notes         string
	Date          string
}

// NewSalesDraft returns an empty draft with the default invoice status.
func NewSalesDraft() SalesDraft {
	return SalesDraft{InvoiceStatus: Pending}
}

// TotalAmount is quantity * price, recomputed on every call.
// It is zero while either input does not parse.
func (d SalesDraft) TotalAmount() Money {
	q, err := ParseMoney(d.Quantity)
	if err != nil {
		return Money{}
	}
	p, err := ParseMoney(d.Price)
	if err != nil {
		return Money{}
	}
	return q.Mul(p)
}

// SalesRecord is a validated sale.
type SalesRecord struct {
	ID            string        `json:"id"`
	ProductName   string        `json:"product_name"`
	LCNumber      string        `json:"lc_number"`
	Quantity      Money         `json:"quantity"`
	Price         Money         `json:"price"`
	Customer      string        `json:"customer"`
	Unit          string        `json:"unit"`
	InvoiceStatus InvoiceStatus `json:"invoice_status"`
	ProductID     string        `json:"product_id,omitempty"`
	Category      string        `json:"category,omitempty"`
	Size          string        `json:"size,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Date          *civil.Date   `json:"date,omitempty"`
}

// TotalAmount is derived from Quantity and Price and never stored.
func (r SalesRecord) TotalAmount() Money {
	return r.Quantity.Mul(r.Price)
}

// Draft converts the record back into form fields for editing.
func (r SalesRecord) Draft() SalesDraft {
	d := SalesDraft{
		ID:            r.ID,
		ProductName:   r.ProductName,
		LCNumber:      r.LCNumber,
		Quantity:      r.Quantity.Decimal().String(),
		Price:         r.Price.Decimal().String(),
		Customer:      r.Customer,
		Unit:          r.Unit,
		InvoiceStatus: r.InvoiceStatus,
		ProductID:     r.ProductID,
		Category:      r.Category,
		Size:          r.Size,
		Notes:         r.Notes,
	}
	if r.Date != nil {
		d.Date = r.Date.String()
	}
	if strings.TrimSpace(string(d.InvoiceStatus)) == "" {
		d.InvoiceStatus = Pending
	}
	return d
}
