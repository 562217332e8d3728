package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/forms"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
)

type saleFormView struct {
	Draft    core.SalesDraft
	Errors   core.FieldErrors
	IsEdit   bool
	Statuses []core.InvoiceStatus
}

func newSaleFormView(f *forms.SaleForm) saleFormView {
	return saleFormView{
		Draft:    f.Draft(),
		Errors:   f.Errors(),
		IsEdit:   f.IsEdit(),
		Statuses: core.InvoiceStatuses,
	}
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	page, err := s.records.Sales(r.Context(), ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		s.writeError(w, r, applog.ComponentSales, err)
		return
	}
	name := "sales.html"
	if isHTMX(r) {
		name = "sales_rows"
	}
	s.writePage(w, r, http.StatusOK, name, page)
}

func (s *Server) handleNewSale(w http.ResponseWriter, r *http.Request) {
	f := forms.NewSaleForm(nil, nil)
	_ = f.Open(nil)
	s.writePage(w, r, http.StatusOK, "sale_form", newSaleFormView(f))
}

func (s *Server) handleEditSale(w http.ResponseWriter, r *http.Request) {
	existing, err := s.records.Sale(r.Context(), strings.TrimSpace(r.URL.Query().Get("id")))
	if err != nil {
		s.writeError(w, r, applog.ComponentSales, err)
		return
	}
	f := forms.NewSaleForm(nil, nil)
	_ = f.Open(&existing)
	s.writePage(w, r, http.StatusOK, "sale_form", newSaleFormView(f))
}

// handleSubmitSale drives one add or edit through the sale form. A non-empty
// "id" field edits that record.
func (s *Server) handleSubmitSale(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	var existing *core.SalesRecord
	if id := p.Get("id"); id != "" {
		rec, err := s.records.Sale(r.Context(), id)
		if err != nil {
			s.writeError(w, r, applog.ComponentSales, err)
			return
		}
		existing = &rec
	}

	var saveErr error
	closed := false
	f := forms.NewSaleForm(
		func(rec core.SalesRecord) { saveErr = s.records.SubmitSale(r.Context(), rec) },
		func() { closed = true },
	)
	_ = f.Open(existing)
	_ = f.Edit(func(d *core.SalesDraft) { SalesDraftFrom(p, d) })

	rec, err := f.Submit()
	if errors.Is(err, core.ErrValidation) {
		body, rerr := s.render(r, "sale_form", newSaleFormView(f))
		if rerr != nil {
			InternalServerError("Unable to render form").Write(w)
			return
		}
		NewHTMXResponse().Status(http.StatusUnprocessableEntity).BodyHTML(body).Write(w)
		return
	}
	if err == nil {
		err = saveErr
	}
	if err != nil {
		s.writeError(w, r, applog.ComponentSales, err)
		return
	}

	logSubmitted(r.Context(), applog.ComponentSales, ports.KindSale, rec.ID)
	if !isHTMX(r) {
		http.Redirect(w, r, "/sales", http.StatusSeeOther)
		return
	}
	resp := NewHTMXResponse().
		TriggerRecordSubmitted(string(ports.KindSale), rec.ID).
		TriggerSuccessNotification("Sale saved")
	if closed {
		resp.TriggerCloseModal()
	}
	resp.Write(w)
}

func logSubmitted(ctx context.Context, component string, kind ports.RecordKind, id string) {
	fields := applog.NewFields().
		WithOperation(applog.OpSubmit).
		WithRecord(string(kind), id)
	applog.FromContext(ctx).WithComponent(component).InfoContext(ctx, "Record submitted", fields.ToSlice()...)
}
