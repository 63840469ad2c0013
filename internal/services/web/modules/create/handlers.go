package create

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/flash"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/weberror"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/templates"
)

// maxFormBody bounds the customizer form.
const maxFormBody = 16 << 10

type handlers struct {
	modulehandler.Base
	planets   Planets
	generator designgen.Generator
}

func newHandlers(planets Planets, generator designgen.Generator, base modulehandler.Base) handlers {
	return handlers{Base: base, planets: planets, generator: generator}
}

func (h handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	state, err := h.planets.Get(r.Context(), h.VisitorID(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, http.StatusOK, h.view(state, ""))
}

func (h handlers) handleSave(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "Malformed form", "The planet form could not be read", err))
		return
	}
	visitorID := h.VisitorID(r)
	patch, err := patchFromForm(r)
	if err == nil {
		_, err = h.planets.Update(r.Context(), visitorID, patch)
	}
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindInvalidInput {
			h.WriteError(w, r, err)
			return
		}
		state, getErr := h.planets.Get(r.Context(), visitorID)
		if getErr != nil {
			h.WriteError(w, r, getErr)
			return
		}
		_, message := apperrors.Public(err)
		h.writeForm(w, r, weberror.StatusCode(err), h.view(draft(state, patch), message))
		return
	}
	h.RedirectWithNotice(w, r, routepath.CreateCustomize, flash.Success("Planet style saved"))
}

func (h handlers) handleLaunchForm(w http.ResponseWriter, r *http.Request) {
	state, err := h.planets.Get(r.Context(), h.VisitorID(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeLaunch(w, r, http.StatusOK, launchView(state, state.Description, ""))
}

// handleLaunch stores the launch description and sends the visitor to the
// galaxy. Short descriptions come back with the submitted text intact.
func (h handlers) handleLaunch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "Malformed form", "The launch form could not be read", err))
		return
	}
	visitorID := h.VisitorID(r)
	description := r.PostForm.Get("description")
	if _, err := h.planets.Launch(r.Context(), visitorID, description); err != nil {
		if apperrors.KindOf(err) != apperrors.KindInvalidInput {
			h.WriteError(w, r, err)
			return
		}
		state, getErr := h.planets.Get(r.Context(), visitorID)
		if getErr != nil {
			h.WriteError(w, r, getErr)
			return
		}
		_, message := apperrors.Public(err)
		h.writeLaunch(w, r, weberror.StatusCode(err), launchView(state, description, message))
		return
	}
	h.RedirectWithNotice(w, r, routepath.Galaxy, flash.Success("Your planet joined the galaxy"))
}

// handleSuggest stores a generated description. Failures come back as a
// notice on the form.
func (h handlers) handleSuggest(w http.ResponseWriter, r *http.Request) {
	visitorID := h.VisitorID(r)
	state, err := h.planets.Get(r.Context(), visitorID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	text, err := h.generator.Suggest(r.Context(), designgen.RequestFromState(state, ""))
	if err == nil {
		_, err = h.planets.Update(r.Context(), visitorID, planet.Patch{Description: &text})
	}
	if err != nil {
		if weberror.StatusCode(err) >= http.StatusInternalServerError && apperrors.KindOf(err) != apperrors.KindUnavailable {
			h.WriteError(w, r, err)
			return
		}
		_, message := apperrors.Public(err)
		h.RedirectWithNotice(w, r, routepath.Create, flash.Error(message))
		return
	}
	h.RedirectWithNotice(w, r, routepath.Create, flash.Success("A new description landed on your planet"))
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, status int, view templates.CreateView) {
	crumbs := []templates.Breadcrumb{{Label: "Home", URL: routepath.Root}, {Label: "Create"}}
	h.WritePageStatus(w, r, status, "Design your planet", crumbs, templates.Create(view))
}

func (h handlers) writeLaunch(w http.ResponseWriter, r *http.Request, status int, view templates.LaunchView) {
	crumbs := []templates.Breadcrumb{{Label: "Home", URL: routepath.Root}, {Label: "Create", URL: routepath.Create}, {Label: "Launch"}}
	h.WritePageStatus(w, r, status, "Launch your planet", crumbs, templates.Launch(view))
}

func launchView(state planet.State, description, formError string) templates.LaunchView {
	return templates.LaunchView{
		Color:       state.Color,
		DesignKey:   state.DesignKey(),
		Description: description,
		MinLength:   planet.MinLaunchDescriptionLength,
		MaxLength:   planet.MaxDescriptionLength,
		Error:       formError,
	}
}

// draft overlays the submitted fields on the stored planet without
// validating them, so a rejected form shows what the visitor sent.
func draft(state planet.State, patch planet.Patch) planet.State {
	if patch.Color != nil {
		state.Color = *patch.Color
	}
	if patch.SurfaceType != nil {
		state.SurfaceType = *patch.SurfaceType
	}
	if patch.RotationLevel != nil {
		state.RotationLevel = *patch.RotationLevel
	}
	if patch.Description != nil {
		state.Description = *patch.Description
	}
	if patch.HasRings != nil {
		state.HasRings = *patch.HasRings
	}
	if patch.HasMoons != nil {
		state.HasMoons = *patch.HasMoons
	}
	if patch.IsPulsing != nil {
		state.IsPulsing = *patch.IsPulsing
	}
	return state
}

func (h handlers) view(state planet.State, formError string) templates.CreateView {
	swatches := make([]templates.Swatch, 0, len(planet.Palette))
	for _, swatch := range planet.Palette {
		swatches = append(swatches, templates.Swatch{Name: swatch.Name, Hex: swatch.Hex})
	}
	surfaces := make([]string, 0, len(planet.Surfaces))
	for _, surface := range planet.Surfaces {
		surfaces = append(surfaces, string(surface))
	}
	_, unavailable := h.generator.(designgen.Unavailable)
	return templates.CreateView{
		Color:         state.Color,
		Surface:       string(state.SurfaceType),
		HasRings:      state.HasRings,
		HasMoons:      state.HasMoons,
		IsPulsing:     state.IsPulsing,
		RotationLevel: state.RotationLevel,
		MaxRotation:   planet.MaxRotationLevel,
		Description:   state.Description,
		MaxDescLength: planet.MaxDescriptionLength,
		DesignKey:     state.DesignKey(),
		Swatches:      swatches,
		Surfaces:      surfaces,
		CanSuggest:    !unavailable,
		Error:         formError,
	}
}

// patchFromForm maps the customizer fields onto a patch. Checkboxes are
// unchecked when absent; other missing fields stay unchanged. A malformed
// rotation is reported after the rest of the form is read.
func patchFromForm(r *http.Request) (planet.Patch, error) {
	var patch planet.Patch
	var err error
	if _, ok := r.PostForm["color"]; ok {
		color := r.PostForm.Get("color")
		patch.Color = &color
	}
	if _, ok := r.PostForm["surface"]; ok {
		surface := planet.Surface(strings.ToLower(strings.TrimSpace(r.PostForm.Get("surface"))))
		patch.SurfaceType = &surface
	}
	if _, ok := r.PostForm["rotation"]; ok {
		level, convErr := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("rotation")))
		if convErr != nil {
			err = planet.ErrInvalidRotation
		} else {
			patch.RotationLevel = &level
		}
	}
	if _, ok := r.PostForm["description"]; ok {
		description := r.PostForm.Get("description")
		patch.Description = &description
	}
	rings := r.PostForm.Get("rings") == "on"
	moons := r.PostForm.Get("moons") == "on"
	pulsing := r.PostForm.Get("pulsing") == "on"
	patch.HasRings, patch.HasMoons, patch.IsPulsing = &rings, &moons, &pulsing
	return patch, err
}
