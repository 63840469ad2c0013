// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/pagerender"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/templates"
	"go.uber.org/zap"
)

// StatusCode maps err onto an error status, never below 400.
func StatusCode(err error) int {
	status := apperrors.HTTPStatus(err)
	if status < http.StatusBadRequest {
		return http.StatusInternalServerError
	}
	return status
}

// WritePageError renders err as an error page. Server failures are logged;
// their text never reaches the page.
func WritePageError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	if w == nil {
		return
	}
	status := StatusCode(err)
	logFailure(logger, r, status, err)
	title, message := apperrors.Public(err)
	writeErr := pagerender.WritePage(w, r, pagerender.Page{
		Title:      title,
		StatusCode: status,
		Body:       templates.ErrorState(status, title, message),
	})
	if writeErr != nil {
		http.Error(w, http.StatusText(status), status)
	}
}

// WriteAPIError writes err as a JSON error body. fallbackMessage replaces the
// generic message for untyped errors.
func WriteAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, logger *zap.Logger) {
	if w == nil {
		return
	}
	logFailure(logger, r, StatusCode(err), err)
	httpx.WriteJSONError(w, err, fallbackMessage)
}

// WriteNotFound renders the not-found page for unmatched page routes.
func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	WritePageError(w, r, apperrors.E(apperrors.KindNotFound, "Lost in space", "We could not find that corner of the galaxy."), nil)
}

func logFailure(logger *zap.Logger, r *http.Request, status int, err error) {
	if logger == nil || status < http.StatusInternalServerError {
		return
	}
	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	logger.Error("request failed",
		zap.Int("status", status),
		zap.String("path", path),
		zap.String("request_id", httpx.RequestIDFrom(r)),
		zap.Error(err),
	)
}
