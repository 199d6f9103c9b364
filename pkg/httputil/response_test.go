package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"hello": "world"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json, got %q", got)
	}
	if got := rr.Body.String(); got != "{\"hello\":\"world\"}\n" {
		t.Errorf("Unexpected body: %q", got)
	}
}

func TestWriteRawJSON_Verbatim(t *testing.T) {
	raw := []byte(`{"spaced":  "exactly as upstream sent it"}`)
	rr := httptest.NewRecorder()
	WriteRawJSON(rr, http.StatusOK, raw)

	if got := rr.Body.String(); got != string(raw) {
		t.Errorf("Body was re-encoded: %q", got)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json, got %q", got)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusBadRequest, "Invalid request body")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	if got := rr.Body.String(); got != "{\"error\":\"Invalid request body\"}\n" {
		t.Errorf("Unexpected body: %q", got)
	}
}
