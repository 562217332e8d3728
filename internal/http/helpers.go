package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
)

const currencySymbol = "৳"

// formatMoney renders an amount as "৳1,234.50", with a leading minus for
// negative values.
func formatMoney(m core.Money) string {
	s := m.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := currencySymbol + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// sanitizeInput removes control characters except tab and newlines, then trims.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func formatDate(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

var templateFuncs = template.FuncMap{
	"money": formatMoney,
	"date":  formatDate,
	"add":   func(a, b int) int { return a + b },
}

// writeError maps domain errors onto status codes and logs server faults.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, component string, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		NotFoundError("Record not found").Write(w)
	case errors.Is(err, core.ErrAccountClosed):
		ConflictError("Cash is already closed for this day").Write(w)
	case errors.Is(err, core.ErrValidation):
		ErrorResponse(http.StatusUnprocessableEntity, err.Error()).Write(w)
	default:
		applog.FromContext(r.Context()).WithComponent(component).ErrorContext(r.Context(), "Request failed",
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
		InternalServerError("Something went wrong, please try again").Write(w)
	}
}
