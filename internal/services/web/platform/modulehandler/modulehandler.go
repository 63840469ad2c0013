// Package modulehandler provides a composable base for web module handlers.
//
// Modules share visitor resolution, page rendering, and error handling. This
// package extracts that scaffold so modules embed it rather than duplicating it.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/flash"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/pagerender"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/visitor"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/weberror"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/templates"
	"go.uber.org/zap"
)

// Base carries the shared logger used by module handlers. Embed it in module
// handler structs.
type Base struct {
	logger *zap.Logger
}

// NewBase builds a handler base. A nil logger discards output.
func NewBase(logger *zap.Logger) Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Base{logger: logger}
}

// NewTestBase builds a handler base that discards logs.
func NewTestBase() Base {
	return NewBase(nil)
}

// Logger returns the module logger.
func (b Base) Logger() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

// VisitorID returns the visitor resolved by the visitor middleware.
func (b Base) VisitorID(r *http.Request) string {
	return visitor.ID(r)
}

// WritePage renders a page (HTMX-aware) with the given title and body.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, crumbs []templates.Breadcrumb, body templ.Component) {
	b.WritePageStatus(w, r, http.StatusOK, title, crumbs, body)
}

// WritePageStatus renders a page with an explicit status, such as a form
// re-rendered after a validation error.
func (b Base) WritePageStatus(w http.ResponseWriter, r *http.Request, status int, title string, crumbs []templates.Breadcrumb, body templ.Component) {
	if err := pagerender.WritePage(w, r, pagerender.Page{
		Title:       title,
		StatusCode:  status,
		Breadcrumbs: crumbs,
		Body:        body,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a module error page.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WritePageError(w, r, err, b.Logger())
}

// WriteNotFound renders the not-found page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r)
}

// WriteJSON writes an API payload, logging encoder failures.
func (b Base) WriteJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpx.WriteJSON(w, status, payload); err != nil {
		b.Logger().Warn("write json response", zap.Error(err))
	}
}

// WriteAPIError writes an API error body.
func (b Base) WriteAPIError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteAPIError(w, r, err, "", b.Logger())
}

// RedirectWithNotice stores a flash notice and redirects to location.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flash.Notice) {
	flash.Write(w, r, notice)
	httpx.WriteRedirect(w, r, location)
}
