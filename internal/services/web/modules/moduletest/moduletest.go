// Package moduletest builds real in-memory services and requests for web
// module tests.
package moduletest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	planetmemory "github.com/louisbranch/cozy.galaxy/internal/services/planet/storage/memory"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/visitor"
)

// VisitorID is the visitor attached by Request.
const VisitorID = "visitor-test"

// Catalog returns a catalog service over the seeded in-memory store.
func Catalog(t testing.TB) *catalog.Service {
	t.Helper()
	store, err := catalog.OpenStore(context.Background(), "")
	if err != nil {
		t.Fatalf("open catalog store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	svc, err := catalog.NewService(store)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	return svc
}

// Planets returns a planet service over an in-memory store.
func Planets(t testing.TB) *planet.Service {
	t.Helper()
	svc, err := planet.NewService(planetmemory.New())
	if err != nil {
		t.Fatalf("planet service: %v", err)
	}
	return svc
}

// Request builds a request already resolved to VisitorID.
func Request(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(visitor.WithID(req.Context(), VisitorID))
}

// Serve mounts m and serves req through its handler.
func Serve(t testing.TB, m module.Module, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}
