package commentsapi

import (
	"net/http"
	"time"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/comments"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
)

var (
	errRouteNotFound   = apperrors.E(apperrors.KindNotFound, "Not found", "No route matches this path")
	errMissingPosition = apperrors.E(apperrors.KindInvalidInput, "Invalid position", "Send both xPct and yPct")
)

type commentResponse struct {
	comments.Comment
	Preview   string `json:"preview"`
	TimeLabel string `json:"timeLabel"`
}

type listResponse struct {
	Comments []commentResponse `json:"comments"`
}

type postRequest struct {
	Content string `json:"content"`
}

type moveRequest struct {
	XPct *float64 `json:"xPct"`
	YPct *float64 `json:"yPct"`
}

type handlers struct {
	modulehandler.Base
	wall Wall
}

func newHandlers(wall Wall, base modulehandler.Base) handlers {
	return handlers{Base: base, wall: wall}
}

func (h handlers) handleList(w http.ResponseWriter, _ *http.Request) {
	now := h.wall.Now()
	list := h.wall.List()
	out := make([]commentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, commentJSON(c, now))
	}
	h.WriteJSON(w, http.StatusOK, listResponse{Comments: out})
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.wall.Get(r.PathValue("commentID"))
	h.writeComment(w, r, http.StatusOK, c, err)
}

func (h handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	c, err := h.wall.Post(req.Content)
	h.writeComment(w, r, http.StatusCreated, c, err)
}

func (h handlers) handleLike(w http.ResponseWriter, r *http.Request) {
	c, err := h.wall.Like(r.PathValue("commentID"))
	h.writeComment(w, r, http.StatusOK, c, err)
}

func (h handlers) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	if req.XPct == nil || req.YPct == nil {
		h.WriteAPIError(w, r, errMissingPosition)
		return
	}
	c, err := h.wall.Move(r.PathValue("commentID"), *req.XPct, *req.YPct)
	h.writeComment(w, r, http.StatusOK, c, err)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteAPIError(w, r, errRouteNotFound)
}

func (h handlers) writeComment(w http.ResponseWriter, r *http.Request, status int, c comments.Comment, err error) {
	if err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	h.WriteJSON(w, status, commentJSON(c, h.wall.Now()))
}

func commentJSON(c comments.Comment, now time.Time) commentResponse {
	return commentResponse{
		Comment:   c,
		Preview:   c.Preview(),
		TimeLabel: comments.TimeLabel(c.CreatedAt, now),
	}
}
