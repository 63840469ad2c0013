package wall

import (
	"net/http"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/comments"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/flash"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/weberror"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/templates"
)

const maxFormBody = 4 << 10

type handlers struct {
	modulehandler.Base
	wall Wall
}

func newHandlers(wall Wall, base modulehandler.Base) handlers {
	return handlers{Base: base, wall: wall}
}

func (h handlers) handleWall(w http.ResponseWriter, r *http.Request) {
	h.writeWall(w, r, http.StatusOK, "")
}

func (h handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "Malformed form", "The comment could not be read", err))
		return
	}
	if _, err := h.wall.Post(r.PostForm.Get("content")); err != nil {
		_, message := apperrors.Public(err)
		h.writeWall(w, r, weberror.StatusCode(err), message)
		return
	}
	h.RedirectWithNotice(w, r, routepath.Comments, flash.Success("Your bubble is floating"))
}

func (h handlers) handleLike(w http.ResponseWriter, r *http.Request) {
	if _, err := h.wall.Like(r.PathValue("commentID")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Comments)
}

func (h handlers) writeWall(w http.ResponseWriter, r *http.Request, status int, formError string) {
	now := h.wall.Now()
	list := h.wall.List()
	bubbles := make([]templates.Bubble, 0, len(list))
	for _, c := range list {
		bubbles = append(bubbles, templates.Bubble{
			ID:        c.ID,
			Kind:      string(c.Kind),
			Author:    c.Author,
			Preview:   c.Preview(),
			Content:   c.Content,
			TimeLabel: comments.TimeLabel(c.CreatedAt, now),
			Accent:    c.Accent,
			Likes:     c.Likes,
			XPct:      c.XPct,
			YPct:      c.YPct,
			FloatDur:  c.FloatDur,
			Drift:     c.Drift,
			Wobble:    c.Wobble,
		})
	}
	crumbs := []templates.Breadcrumb{{Label: "Home", URL: routepath.Root}, {Label: "Comments"}}
	h.WritePageStatus(w, r, status, "Galaxy comments", crumbs, templates.Wall(templates.WallView{
		Bubbles:          bubbles,
		Error:            formError,
		MaxContentLength: comments.MaxContentLength,
	}))
}
