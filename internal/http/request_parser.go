// Package http provides HTTP server and handler implementations.
//
// This file holds the helpers that turn query strings and request bodies
// into query criteria and form drafts.

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/forms"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/query"
)

// maxBodyBytes bounds form and JSON submissions.
const maxBodyBytes = 64 << 10

// ParseDate reads a YYYY-MM-DD value, falling back to today when it is
// missing or malformed.
func ParseDate(v string, today civil.Date) civil.Date {
	if d, err := core.ParseDate(strings.TrimSpace(v)); err == nil {
		return d
	}
	return today
}

// ParsePage reads a 1-based page number. Anything else is page 1.
func ParsePage(v string) int {
	if p, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && p > 0 {
		return p
	}
	return 1
}

// ParseCriteria builds the accounts query from ?date=&q=&category=&page=.
func ParseCriteria(values url.Values, today civil.Date, pageSize int) query.Criteria {
	category := sanitizeInput(values.Get("category"))
	if category == "" {
		category = query.AllCategories
	}
	return query.Criteria{
		Date:       ParseDate(values.Get("date"), today),
		SearchTerm: sanitizeInput(values.Get("q")),
		Category:   category,
		Page:       ParsePage(values.Get("page")),
		PageSize:   pageSize,
	}
}

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser reads at most maxBodyBytes of the request body.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if strings.HasPrefix(p.contentType, "application/json") || p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a trimmed, sanitized value from the parsed data.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// SalesDraftFrom fills a draft with the submitted sales fields. A missing
// invoice status keeps the draft's current one.
func SalesDraftFrom(p *RequestBodyParser, d *core.SalesDraft) {
	d.ProductName = p.Get(forms.FieldProductName)
	d.LCNumber = p.Get(forms.FieldLCNumber)
	d.Quantity = p.Get(forms.FieldQuantity)
	d.Price = p.Get(forms.FieldPrice)
	d.Customer = p.Get(forms.FieldCustomer)
	d.Unit = p.Get(forms.FieldUnit)
	if status := p.Get(forms.FieldInvoiceStatus); status != "" {
		d.InvoiceStatus = core.InvoiceStatus(status)
	}
	d.ProductID = p.Get(forms.FieldProductID)
	d.Category = p.Get(forms.FieldCategory)
	d.Size = p.Get(forms.FieldSize)
	d.Notes = p.Get(forms.FieldNotes)
	d.Date = p.Get(forms.FieldDate)
}

// TeamMemberDraftFrom fills a draft with the submitted team fields. The
// avatar is only replaced when one is sent.
func TeamMemberDraftFrom(p *RequestBodyParser, d *core.TeamMemberDraft) {
	d.Name = p.Get(forms.FieldName)
	d.Phone = p.Get(forms.FieldPhone)
	d.Role = p.Get(forms.FieldRole)
	d.Location = p.Get(forms.FieldLocation)
	d.Status = p.Get(forms.FieldStatus)
	if av := p.Get(forms.FieldAvatar); av != "" {
		d.Avatar = av
	}
}
