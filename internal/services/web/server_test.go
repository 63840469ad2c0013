package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog"
	"github.com/louisbranch/cozy.galaxy/internal/services/comments"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	planetmemory "github.com/louisbranch/cozy.galaxy/internal/services/planet/storage/memory"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/visitor"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	// cloud.google.com/go starts an opencensus worker in init through genai.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func testConfig(t *testing.T) Config {
	t.Helper()
	store, err := catalog.OpenStore(context.Background(), "")
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	catalogSvc, err := catalog.NewService(store)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	planets, err := planet.NewService(planetmemory.New())
	if err != nil {
		t.Fatalf("planet service: %v", err)
	}
	return Config{
		HTTPAddr:   "127.0.0.1:0",
		Catalog:    catalogSvc,
		Planets:    planets,
		Wall:       comments.NewWall(),
		VisitorKey: "test-visitor-key-0123456789",
	}
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	h, err := NewHandler(testConfig(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func visitorCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == visitor.CookieName {
			return c
		}
	}
	t.Fatalf("response did not set %s", visitor.CookieName)
	return nil
}

func TestNewHandlerRequiresServices(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{}); err == nil {
		t.Fatalf("expected error for missing services")
	}
}

func TestStaticStylesheetServed(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t), httptest.NewRequest(http.MethodGet, "/static/galaxy.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/css") {
		t.Fatalf("content-type = %q, want text/css", ct)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rr.Code, rr.Body.String())
	}
}

func TestSearchEndToEnd(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t), httptest.NewRequest(http.MethodGet, "/api/search?q=bicycle", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
		Total int    `json:"total"`
		Query string `json:"query"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || body.Results[0].ID != "bicycle-riders" || body.Query != "bicycle" {
		t.Fatalf("body = %+v", body)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestEveryPageRoute(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	for _, path := range []string{"/", "/galaxy", "/galaxy/", "/community/book-worms", "/community/my-planet", "/create", "/create/customize", "/galaxy-comments"} {
		rr := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "<!doctype html>") {
			t.Fatalf("GET %s did not render the layout", path)
		}
	}
}

func TestUnknownRoutes(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Body.String(), "Lost in space") {
		t.Fatalf("page 404 = %d %q", rr.Code, rr.Body.String())
	}
	rr = serve(h, httptest.NewRequest(http.MethodGet, "/api/nowhere", nil))
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("api 404 = %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
}

func TestVisitorCookieKeepsPlanetAcrossRequests(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	first := serve(h, httptest.NewRequest(http.MethodGet, "/api/planet", nil))
	cookie := visitorCookie(t, first)

	req := httptest.NewRequest(http.MethodPost, "/api/planet/rings", nil)
	req.Header.Set("Origin", "http://example.com")
	req.AddCookie(cookie)
	if rr := serve(h, req); rr.Code != http.StatusOK {
		t.Fatalf("toggle rings status = %d body=%q", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/planet", nil)
	req.AddCookie(cookie)
	rr := serve(h, req)
	var state planet.State
	if err := json.Unmarshal(rr.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !state.HasRings {
		t.Fatalf("planet did not keep rings for the same visitor")
	}

	other := serve(h, httptest.NewRequest(http.MethodGet, "/api/planet", nil))
	if err := json.Unmarshal(other.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.HasRings {
		t.Fatalf("new visitor saw another visitor's planet")
	}
}

func TestCrossSiteMutationWithCookieIsRejected(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	cookie := visitorCookie(t, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)))

	req := httptest.NewRequest(http.MethodPost, "/api/communities/book-worms/join", nil)
	req.AddCookie(cookie)
	rr := serve(h, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("missing origin status = %d, want 403", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("content type = %q, want application/json", got)
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode forbidden body: %v", err)
	}
	if body.Error == "" || body.Message == "" {
		t.Fatalf("forbidden body = %+v, want error and message", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(`{"content":"hi"}`))
	req.AddCookie(cookie)
	if rr := serve(h, req); rr.Code != http.StatusForbidden || !strings.Contains(rr.Body.String(), `"error"`) {
		t.Fatalf("comments post = %d %q, want JSON 403", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/galaxy-comments", strings.NewReader("content=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	if rr := serve(h, req); rr.Code != http.StatusForbidden {
		t.Fatalf("page post status = %d, want 403", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/communities/book-worms/join", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.AddCookie(cookie)
	if rr := serve(h, req); rr.Code != http.StatusForbidden {
		t.Fatalf("foreign origin status = %d, want 403", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/communities/book-worms/join", nil)
	req.Header.Set("Origin", "http://example.com")
	req.AddCookie(cookie)
	if rr := serve(h, req); rr.Code != http.StatusOK {
		t.Fatalf("same origin status = %d, want 200", rr.Code)
	}
}

func TestRequestsAreLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	cfg := testConfig(t)
	cfg.Logger = zap.New(core)
	h, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if logs.Len() == 0 {
		t.Fatalf("expected a request log entry")
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.HTTPAddr = " "
	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	defer client.CloseIdleConnections()
	resp, err := client.Get("http://" + srv.Addr() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("GET healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
