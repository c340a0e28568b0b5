package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/runsage/runsage/internal/chat"
	"github.com/runsage/runsage/internal/config"
	"github.com/runsage/runsage/internal/resolver"
	"github.com/runsage/runsage/pkg/models"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	res, err := resolver.Train([]models.QAPair{
		{Question: "what was the result of test login", Answer: "The test test login in tests/auth.spec.js passed."},
		{Question: "did test login pass", Answer: "The test test login in tests/auth.spec.js passed."},
		{Question: "how many tests failed", Answer: "0 of 1 tests failed."},
		{Question: "how many tests passed", Answer: "1 of 1 tests passed."},
	}, 1.0)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	man := &models.Manifest{
		ReportSHA256: "abc123",
		Backend:      "bayes",
		LastRun:      time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
	}

	responder, err := chat.NewResponder(res, man, &config.ChatConfig{Timezone: "UTC"})
	if err != nil {
		t.Fatalf("NewResponder() error = %v", err)
	}

	return NewServer(responder, man, ":0")
}

func postJSON(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAskJSON(t *testing.T) {
	handler := testServer(t).Handler()

	rec := postJSON(t, handler, `{"question": "how many tests failed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["answer"] != "0 of 1 tests failed." {
		t.Errorf("answer = %q", resp["answer"])
	}
}

func TestAskForm(t *testing.T) {
	handler := testServer(t).Handler()

	form := url.Values{"question": {"did test login pass"}}
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "passed") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestAskValidation(t *testing.T) {
	handler := testServer(t).Handler()

	rec := postJSON(t, handler, `{"question": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty question status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, handler, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ask", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
}

func TestAskGreeting(t *testing.T) {
	handler := testServer(t).Handler()

	rec := postJSON(t, handler, `{"question": "hello"}`)
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["answer"] != chat.HelpReply {
		t.Errorf("answer = %q, want help reply", resp["answer"])
	}
}

func TestHealth(t *testing.T) {
	handler := testServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestModelManifest(t *testing.T) {
	handler := testServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/model", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var man models.Manifest
	if err := json.Unmarshal(rec.Body.Bytes(), &man); err != nil {
		t.Fatalf("invalid manifest JSON: %v", err)
	}
	if man.ReportSHA256 != "abc123" {
		t.Errorf("manifest hash = %q", man.ReportSHA256)
	}
}

func TestIndexPage(t *testing.T) {
	handler := testServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<form") {
		t.Error("index page should contain the ask form")
	}

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}
