package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestLoggerJSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Output: &buf}).WithComponent(ComponentSales)

	logger.Debug("hidden")
	logger.InfoContext(context.Background(), "Sale submitted", FieldRecordID, "sale-001")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record below debug level, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec[FieldComponent] != ComponentSales || rec[FieldRecordID] != "sale-001" {
		t.Errorf("record = %v", rec)
	}
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().WithRecord("sale", "s-1").WithError(nil).WithError(errors.New("boom")).WithRequestID("")
	if f[FieldRecordKind] != "sale" || f[FieldError] != "boom" {
		t.Errorf("fields = %v", f)
	}
	if _, ok := f[FieldRequestID]; ok {
		t.Error("empty request ID must be omitted")
	}
	if got := len(f.ToSlice()); got != 6 {
		t.Errorf("ToSlice() len = %d, want 6", got)
	}
}

func TestMiddlewareStoresLogger(t *testing.T) {
	logger := New(Config{Output: &bytes.Buffer{}})
	var got *Logger
	h := Middleware(logger)(ComponentMiddleware(ComponentTeam)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/team", nil))

	if got == nil || got.Component() != ComponentTeam {
		t.Fatalf("logger from context = %+v", got)
	}
	if FromContext(context.Background()).Component() != ComponentApp {
		t.Error("fallback logger should use the app component")
	}
}
