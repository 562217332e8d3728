package forms

import (
	"strings"

	"github.com/google/uuid"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

// Sales form field names.
const (
	FieldProductName   = "productName"
	FieldLCNumber      = "lcNumber"
	FieldQuantity      = "quantity"
	FieldPrice         = "price"
	FieldCustomer      = "customer"
	FieldUnit          = "unit"
	FieldInvoiceStatus = "invoiceStatus"
	FieldProductID     = "productId"
	FieldCategory      = "category"
	FieldSize          = "size"
	FieldNotes         = "notes"
	FieldDate          = "date"
)

// ValidateSale checks every sales field and reports all failures.
// Quantity and price must parse as numbers greater than zero.
func ValidateSale(d core.SalesDraft) core.FieldErrors {
	errs := core.FieldErrors{}
	required := []struct {
		field, value, label string
	}{
		{FieldProductName, d.ProductName, "Product name"},
		{FieldLCNumber, d.LCNumber, "LC number"},
		{FieldQuantity, d.Quantity, "Quantity"},
		{FieldPrice, d.Price, "Price"},
		{FieldCustomer, d.Customer, "Customer"},
		{FieldUnit, d.Unit, "Unit"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.Add(r.field, core.RequiredField, r.label+" is required")
		}
	}
	checkPositive(errs, FieldQuantity, "Quantity", d.Quantity)
	checkPositive(errs, FieldPrice, "Price", d.Price)

	switch s := core.InvoiceStatus(strings.TrimSpace(string(d.InvoiceStatus))); {
	case s == "":
		errs.Add(FieldInvoiceStatus, core.RequiredField, "Invoice status is required")
	case !s.Valid():
		errs.Add(FieldInvoiceStatus, core.InvalidFormat, "Unknown invoice status")
	}
	if strings.TrimSpace(d.Date) != "" {
		if _, err := core.ParseDate(d.Date); err != nil {
			errs.Add(FieldDate, core.InvalidFormat, "Date must be YYYY-MM-DD")
		}
	}
	return errs
}

// checkPositive rejects values that do not parse or are not above zero.
// Empty values are left to the required check.
func checkPositive(errs core.FieldErrors, field, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	m, err := core.ParseMoney(value)
	if err != nil || !m.IsPositive() {
		errs.Add(field, core.InvalidRange, label+" must be greater than zero")
	}
}

// NormalizeSale builds the record from a valid draft.
func NormalizeSale(d core.SalesDraft, existing *core.SalesRecord) core.SalesRecord {
	qty, _ := core.ParseMoney(d.Quantity)
	price, _ := core.ParseMoney(d.Price)
	r := core.SalesRecord{
		ProductName:   strings.TrimSpace(d.ProductName),
		LCNumber:      strings.TrimSpace(d.LCNumber),
		Quantity:      qty,
		Price:         price,
		Customer:      strings.TrimSpace(d.Customer),
		Unit:          strings.TrimSpace(d.Unit),
		InvoiceStatus: core.InvoiceStatus(strings.TrimSpace(string(d.InvoiceStatus))),
		ProductID:     strings.TrimSpace(d.ProductID),
		Category:      strings.TrimSpace(d.Category),
		Size:          strings.TrimSpace(d.Size),
		Notes:         strings.TrimSpace(d.Notes),
	}
	if existing != nil && existing.ID != "" {
		r.ID = existing.ID
	} else {
		r.ID = uuid.NewString()
	}
	if date, err := core.ParseDate(d.Date); err == nil {
		r.Date = &date
	}
	return r
}

var SaleDefinition = Definition[core.SalesDraft, core.SalesRecord]{
	Empty:     core.NewSalesDraft,
	Prefill:   core.SalesRecord.Draft,
	Validate:  ValidateSale,
	Normalize: NormalizeSale,
}

// SaleForm is the add/edit sale dialog.
type SaleForm = Form[core.SalesDraft, core.SalesRecord]

func NewSaleForm(onSubmitted func(core.SalesRecord), onClose func()) *SaleForm {
	return New(SaleDefinition, onSubmitted, onClose)
}
