package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	called := ""
	mw1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called += "1"
			next.ServeHTTP(w, r)
		})
	}
	mw2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called += "2"
			next.ServeHTTP(w, r)
		})
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mw1, nil, mw2)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestMethodNotAllowedWritesAllowHeaderAndStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	MethodNotAllowed(http.MethodPost).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/community/x/join", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q, want %q", got, http.MethodPost)
	}
}

func TestRequestIDAddsHeaderWhenMissing(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RequestIDFrom(r) == "-" {
			t.Errorf("expected request header to include request id")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.HasPrefix(rr.Header().Get("X-Request-ID"), "galaxy-") {
		t.Fatalf("request id = %q", rr.Header().Get("X-Request-ID"))
	}
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("request id = %q, want %q", got, "req-123")
	}
}

func TestRecoverPanicLogsAndReturnsJSONForAPI(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	h := RecoverPanic(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/search?q=x", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	var body ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error == "" || body.Message == "" {
		t.Fatalf("body = %+v, want error and message", body)
	}
	entries := logs.FilterMessage("panic recovered").All()
	if len(entries) != 1 {
		t.Fatalf("panic log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/api/search" || fields["request_id"] != "req-123" {
		t.Fatalf("log fields = %v", fields)
	}
}

func TestRecoverPanicPlainForPages(t *testing.T) {
	t.Parallel()

	h := RecoverPanic(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/galaxy", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if ct := rr.Header().Get("Content-Type"); strings.Contains(ct, "json") {
		t.Fatalf("content-type = %q, want non-JSON", ct)
	}
}

func TestWriteJSONSetsContentTypeAndBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteJSON(rr, http.StatusOK, struct {
		Value string `json:"value"`
	}{Value: "ok"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	if body := rr.Body.String(); !strings.Contains(body, "\"value\":\"ok\"") {
		t.Fatalf("body = %q, want encoded json", body)
	}
}

func TestWriteJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		fallback    string
		wantStatus  int
		wantError   string
		wantMessage string
	}{
		{
			name:        "typed",
			err:         apperrors.E(apperrors.KindInvalidInput, "Bad thing", "Fix it"),
			wantStatus:  http.StatusBadRequest,
			wantError:   "Bad thing",
			wantMessage: "Fix it",
		},
		{
			name:        "untyped uses fallback",
			err:         errors.New("database on fire"),
			fallback:    "An unexpected error occurred while processing your search",
			wantStatus:  http.StatusInternalServerError,
			wantError:   apperrors.InternalTitle,
			wantMessage: "An unexpected error occurred while processing your search",
		},
		{
			name:        "untyped generic",
			err:         errors.New("database on fire"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   apperrors.InternalTitle,
			wantMessage: apperrors.InternalMessage,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			WriteJSONError(rr, tc.err, tc.fallback)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			var body ErrorBody
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tc.wantError || body.Message != tc.wantMessage {
				t.Fatalf("body = %+v", body)
			}
			if strings.Contains(rr.Body.String(), "on fire") {
				t.Fatal("internal error text leaked")
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Content string `json:"content"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"content":"hi"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"content":"hi","extra":1}`, wantErr: true},
		{name: "trailing data", body: `{"content":"hi"}{"content":"again"}`, wantErr: true},
		{name: "too large", body: `{"content":"` + strings.Repeat("a", maxJSONBody) + `"}`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(tc.body))
			var got payload
			err := DecodeJSON(httptest.NewRecorder(), req, &got)
			if tc.wantErr {
				if apperrors.KindOf(err) != apperrors.KindInvalidInput {
					t.Fatalf("error = %v, want invalid input", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Content != "hi" {
				t.Fatalf("content = %q", got.Content)
			}
		})
	}
}

func TestIsAPIRequest(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]bool{
		"/api/search":    true,
		"/api":           true,
		"/api/planet/x":  true,
		"/apiary":        false,
		"/galaxy":        false,
		"/community/api": false,
	} {
		if got := IsAPIRequest(httptest.NewRequest(http.MethodGet, path, nil)); got != want {
			t.Fatalf("IsAPIRequest(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWriteRedirect(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteRedirect(rr, httptest.NewRequest(http.MethodPost, "/community/x/join", nil), "/?joined=x")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/?joined=x" {
		t.Fatalf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodPost, "/community/x/join", nil)
	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	WriteRedirect(rr, req, "/?joined=x")
	if rr.Code != http.StatusOK || rr.Header().Get("HX-Redirect") != "/?joined=x" {
		t.Fatalf("htmx status = %d header = %q", rr.Code, rr.Header().Get("HX-Redirect"))
	}
}

func TestMethodNotAllowedJSONWritesErrorBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	MethodNotAllowedJSON("GET, HEAD")(rr, httptest.NewRequest(http.MethodPost, "/api/search", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != "GET, HEAD" {
		t.Fatalf("Allow = %q", got)
	}
	var body ErrorBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == "" || body.Message == "" {
		t.Fatalf("body = %+v", body)
	}
}
