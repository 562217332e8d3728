package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Status(http.StatusOK).
		Body([]byte("test")).
		Write(w)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "test" {
		t.Errorf("Body = %q, want %q", w.Body.String(), "test")
	}
	if w.Header().Get("HX-Trigger") != "" {
		t.Error("HX-Trigger must be absent without triggers")
	}
}

func TestHTMXResponseBuilder_SubmitTriggers(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerRecordSubmitted("sale", "sale-001").
		TriggerCloseModal().
		TriggerSuccessNotification("Sale saved").
		Write(w)

	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(w.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not JSON: %v", err)
	}
	for _, name := range []string{EventRecordSubmitted, EventCloseModal, EventNotification} {
		if _, ok := triggers[name]; !ok {
			t.Errorf("HX-Trigger missing %q: %s", name, w.Header().Get("HX-Trigger"))
		}
	}
	if !strings.Contains(string(triggers[EventRecordSubmitted]), `"id":"sale-001"`) {
		t.Errorf("recordSubmitted payload = %s", triggers[EventRecordSubmitted])
	}
}

func TestHTMXResponseBuilder_Retarget(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Retarget("#modal").
		Status(http.StatusUnprocessableEntity).
		Write(w)

	if w.Header().Get("HX-Retarget") != "#modal" {
		t.Errorf("HX-Retarget = %q", w.Header().Get("HX-Retarget"))
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status code = %d", w.Code)
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		builder    *HTMXResponseBuilder
		wantStatus int
		wantBody   string
	}{
		{"bad request", BadRequestError("Invalid input"), http.StatusBadRequest, `<div class="error">Invalid input</div>`},
		{"not found", NotFoundError("Sale not found"), http.StatusNotFound, `<div class="error">Sale not found</div>`},
		{"conflict", ConflictError("Cash already closed"), http.StatusConflict, `<div class="error">Cash already closed</div>`},
		{"internal server error", InternalServerError("Something broke"), http.StatusInternalServerError, `<div class="error">Something broke</div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)

			if w.Code != tt.wantStatus {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantStatus)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("Body = %q, want %q", w.Body.String(), tt.wantBody)
			}
			if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
				t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestErrorResponse_EscapesHTML(t *testing.T) {
	w := httptest.NewRecorder()

	BadRequestError("<script>alert('xss')</script>").Write(w)

	body := w.Body.String()
	if strings.Contains(body, "<script>") {
		t.Error("Error response did not escape HTML")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("Error response did not properly escape HTML entities")
	}
}
