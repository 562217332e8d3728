package forms

import (
	"errors"
	"testing"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

type recorder struct {
	submitted []core.SalesRecord
	closed    int
}

func (r *recorder) form() *SaleForm {
	return NewSaleForm(func(s core.SalesRecord) { r.submitted = append(r.submitted, s) }, func() { r.closed++ })
}

func fill(d *core.SalesDraft) {
	*d = validSaleDraft()
}

func TestFormSubmitSuccess(t *testing.T) {
	rec := &recorder{}
	f := rec.form()
	if f.State() != Closed {
		t.Fatalf("new form should be closed")
	}
	if err := f.Open(nil); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.Edit(fill); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if f.State() != Editing {
		t.Fatalf("state %s", f.State())
	}
	if got := f.Draft().TotalAmount().String(); got != "25.00" {
		t.Fatalf("draft total: %s", got)
	}

	r, err := f.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(rec.submitted) != 1 || rec.submitted[0].ID != r.ID {
		t.Fatalf("onRecordSubmitted calls: %d", len(rec.submitted))
	}
	if rec.closed != 1 || f.State() != Closed {
		t.Fatalf("form should close once, closed=%d state=%s", rec.closed, f.State())
	}
	if f.Draft().ProductName != "" {
		t.Fatalf("draft not reset after submit")
	}
}

func TestFormSubmitRejected(t *testing.T) {
	rec := &recorder{}
	f := rec.form()
	_ = f.Open(nil)
	_ = f.Edit(func(d *core.SalesDraft) {
		fill(d)
		d.Quantity = "0"
	})

	_, err := f.Submit()
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(rec.submitted) != 0 || rec.closed != 0 {
		t.Fatalf("no callbacks on failure: submitted=%d closed=%d", len(rec.submitted), rec.closed)
	}
	if f.State() != Editing || f.Draft().ProductName != "Cotton yarn" {
		t.Fatalf("draft must stay editable, state=%s", f.State())
	}
	if !f.Errors().Has(FieldQuantity) {
		t.Fatalf("missing quantity error: %v", f.Errors())
	}

	_ = f.Edit(func(d *core.SalesDraft) { d.Quantity = "-5" })
	if _, err := f.Submit(); err == nil {
		t.Fatalf("negative quantity should block submit")
	}

	_ = f.Edit(func(d *core.SalesDraft) { d.Quantity = "10" })
	if _, err := f.Submit(); err != nil {
		t.Fatalf("corrected draft: %v", err)
	}
	if len(rec.submitted) != 1 {
		t.Fatalf("submitted %d", len(rec.submitted))
	}
}

func TestFormCancelAndDismiss(t *testing.T) {
	rec := &recorder{}
	f := rec.form()
	_ = f.Open(nil)
	_ = f.Edit(fill)
	if err := f.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if rec.closed != 1 || len(rec.submitted) != 0 {
		t.Fatalf("cancel callbacks: closed=%d submitted=%d", rec.closed, len(rec.submitted))
	}
	if f.Draft().ProductName != "" {
		t.Fatalf("cancel must discard draft")
	}

	_ = f.Open(nil)
	if err := f.Dismiss(); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if rec.closed != 2 {
		t.Fatalf("dismiss should call onClose")
	}
	if err := f.Cancel(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel on closed form: %v", err)
	}
	if _, err := f.Submit(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("submit on closed form: %v", err)
	}
	if err := f.Edit(fill); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("edit on closed form: %v", err)
	}
}

func TestFormReopenDoesNotLeakDraft(t *testing.T) {
	rec := &recorder{}
	f := rec.form()

	first := NormalizeSale(validSaleDraft(), nil)
	second := first
	second.ID = "other"
	second.ProductName = "Denim"
	second.Customer = "Blue Co"

	_ = f.Open(&first)
	if !f.IsEdit() || f.Draft().ProductName != "Cotton yarn" {
		t.Fatalf("prefill: %+v", f.Draft())
	}
	_ = f.Edit(func(d *core.SalesDraft) { d.Notes = "half typed" })

	// switching the record while open replaces the draft
	_ = f.Open(&second)
	if d := f.Draft(); d.ProductName != "Denim" || d.Notes != "" {
		t.Fatalf("draft leaked: %+v", d)
	}
	_ = f.Cancel()

	_ = f.Open(nil)
	if d := f.Draft(); d.ProductName != "" || d.Customer != "" || d.InvoiceStatus != core.Pending || f.IsEdit() {
		t.Fatalf("empty open leaked: %+v", d)
	}

	_ = f.Edit(func(d *core.SalesDraft) { d.Quantity = "x" })
	_, _ = f.Submit()
	_ = f.Open(&second)
	if len(f.Errors()) != 0 {
		t.Fatalf("errors leaked across open: %v", f.Errors())
	}
}

func TestFormEditKeepsID(t *testing.T) {
	var got []core.TeamMember
	f := NewTeamMemberForm(nil, func(m core.TeamMember) { got = append(got, m) }, nil)
	existing := core.TeamMember{ID: "tm-1", Name: "Ayesha", Phone: "+880 1711-000111", Role: core.RoleAccountant, Location: "Chattogram", Status: core.StatusSuspended}

	_ = f.Open(&existing)
	_ = f.Edit(func(d *core.TeamMemberDraft) { d.Location = "Dhaka" })
	m, err := f.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.ID != "tm-1" || m.Location != "Dhaka" || m.Status != core.StatusSuspended {
		t.Fatalf("unexpected member: %+v", m)
	}
	if m.Avatar != "/avatars/ayesha.png" {
		t.Fatalf("avatar: %q", m.Avatar)
	}
	if len(got) != 1 {
		t.Fatalf("onRecordSubmitted calls: %d", len(got))
	}
}
