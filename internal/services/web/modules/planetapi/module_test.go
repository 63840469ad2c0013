package planetapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/moduletest"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	got  *designgen.Request
}

func (g stubGenerator) Suggest(_ context.Context, req designgen.Request) (string, error) {
	if g.got != nil {
		*g.got = req
	}
	return g.text, nil
}

func newModule(t *testing.T, generator designgen.Generator) Module {
	t.Helper()
	return New(moduletest.Planets(t), generator, modulehandler.NewTestBase())
}

func decodeState(t *testing.T, body []byte) (planet.State, string) {
	t.Helper()
	var state planet.State
	require.NoError(t, json.Unmarshal(body, &state))
	var key struct {
		DesignKey string `json:"designKey"`
	}
	require.NoError(t, json.Unmarshal(body, &key))
	return state, key.DesignKey
}

func TestGetReturnsDefaultPlanet(t *testing.T) {
	t.Parallel()

	m := newModule(t, nil)
	for _, path := range []string{"/api/planet", "/api/planet/"} {
		rr := moduletest.Serve(t, m, moduletest.Request(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code, path)
		state, key := decodeState(t, rr.Body.Bytes())
		require.Equal(t, planet.Default(), state)
		require.Equal(t, "PeachClay", key)
	}
}

func TestPatchUpdatesPlanet(t *testing.T) {
	t.Parallel()

	m := newModule(t, nil)
	body := strings.NewReader(`{"color":"#aec6cf","surfaceType":"moss","rotationLevel":7}`)
	rr := moduletest.Serve(t, m, moduletest.Request(http.MethodPatch, "/api/planet", body))
	require.Equal(t, http.StatusOK, rr.Code)
	state, key := decodeState(t, rr.Body.Bytes())
	require.Equal(t, "#AEC6CF", state.Color)
	require.Equal(t, planet.SurfaceMoss, state.SurfaceType)
	require.Equal(t, 7, state.RotationLevel)
	require.Equal(t, "SkyMoss", key)

	rr = moduletest.Serve(t, m, moduletest.Request(http.MethodGet, "/api/planet", nil))
	state, _ = decodeState(t, rr.Body.Bytes())
	require.Equal(t, 7, state.RotationLevel)
}

func TestPatchRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body      string
		wantError string
	}{
		"surface":  {body: `{"surfaceType":"ice"}`, wantError: "Invalid surface"},
		"color":    {body: `{"color":"red"}`, wantError: "Invalid color"},
		"rotation": {body: `{"rotationLevel":11}`, wantError: "Invalid rotation level"},
		"unknown":  {body: `{"size":3}`, wantError: "Malformed JSON body"},
		"empty":    {body: ``, wantError: "Request body is required"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newModule(t, nil)
			rr := moduletest.Serve(t, m, moduletest.Request(http.MethodPatch, "/api/planet", strings.NewReader(tc.body)))
			require.Equal(t, http.StatusBadRequest, rr.Code)
			var errBody map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errBody))
			require.Equal(t, tc.wantError, errBody["error"])

			rr = moduletest.Serve(t, m, moduletest.Request(http.MethodGet, "/api/planet", nil))
			state, _ := decodeState(t, rr.Body.Bytes())
			require.Equal(t, planet.Default(), state)
		})
	}
}

func TestTogglesFlipRingsAndMoons(t *testing.T) {
	t.Parallel()

	m := newModule(t, nil)
	rr := moduletest.Serve(t, m, moduletest.Request(http.MethodPost, "/api/planet/rings", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	state, _ := decodeState(t, rr.Body.Bytes())
	require.True(t, state.HasRings)
	require.False(t, state.HasMoons)

	rr = moduletest.Serve(t, m, moduletest.Request(http.MethodPost, "/api/planet/moons", nil))
	state, _ = decodeState(t, rr.Body.Bytes())
	require.True(t, state.HasMoons)

	rr = moduletest.Serve(t, m, moduletest.Request(http.MethodPost, "/api/planet/rings", nil))
	state, _ = decodeState(t, rr.Body.Bytes())
	require.False(t, state.HasRings)
}

func TestSuggestSavesDescription(t *testing.T) {
	t.Parallel()

	var got designgen.Request
	m := newModule(t, stubGenerator{text: "A mossy haven for slow readers.", got: &got})
	rr := moduletest.Serve(t, m, moduletest.Request(http.MethodPost, "/api/planet/description/suggest", strings.NewReader(`{"hint":" books "}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	state, _ := decodeState(t, rr.Body.Bytes())
	require.Equal(t, "A mossy haven for slow readers.", state.Description)
	require.Equal(t, "books", got.Hint)
	require.Equal(t, planet.SurfaceClay, got.Surface)
}

func TestSuggestWithoutBody(t *testing.T) {
	t.Parallel()

	m := newModule(t, stubGenerator{text: "Quiet and warm."})
	rr := moduletest.Serve(t, m, moduletest.Request(http.MethodPost, "/api/planet/description/suggest", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	state, _ := decodeState(t, rr.Body.Bytes())
	require.Equal(t, "Quiet and warm.", state.Description)
}

func TestSuggestUnavailable(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t, designgen.Unavailable{}), moduletest.Request(http.MethodPost, "/api/planet/description/suggest", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var errBody map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errBody))
	require.Equal(t, "Description suggestions are unavailable", errBody["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	m := newModule(t, nil)
	rr := moduletest.Serve(t, m, moduletest.Request(http.MethodDelete, "/api/planet", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.Equal(t, "GET, PATCH", rr.Header().Get("Allow"))

	rr = moduletest.Serve(t, m, moduletest.Request(http.MethodGet, "/api/planet/rings", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

func TestUnknownSubpathIsNotFound(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t, nil), moduletest.Request(http.MethodGet, "/api/planet/stars", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}
