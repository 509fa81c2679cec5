package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, http.StatusCreated, "created", map[string]string{"id": "1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var body Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message != "created" || body.Data == nil {
		t.Errorf("unexpected envelope %+v", body)
	}
}

func TestFail_OmitsData(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusNotFound, "Note not found")

	var raw map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["success"] != false || raw["message"] != "Note not found" {
		t.Errorf("unexpected body %v", raw)
	}
	if _, present := raw["data"]; present {
		t.Error("expected data to be omitted on failure")
	}
}

func TestMessageAndErr(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, http.StatusBadRequest, "Search query is required")
	if rec.Body.String() != "{\"message\":\"Search query is required\"}\n" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	Err(rec, http.StatusNotFound, "Note not found")
	if rec.Body.String() != "{\"error\":\"Note not found\"}\n" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}
