package community

import (
	"net/http"
	"testing"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/moduletest"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/flash"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/stretchr/testify/require"
)

func newModule(t *testing.T) Module {
	t.Helper()
	return New(moduletest.Catalog(t), moduletest.Planets(t), modulehandler.NewTestBase())
}

func TestDetailRendersCommunity(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t), moduletest.Request(http.MethodGet, "/community/bicycle-riders", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, "Bicycle Riders")
	require.Contains(t, body, "Singapore, East Coast")
	require.Contains(t, body, "621 Citizens")
	require.Contains(t, body, `action="/community/bicycle-riders/join"`)
}

func TestDetailRendersMyPlanet(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t), moduletest.Request(http.MethodGet, "/community/my-planet", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, "My New Colony")
	require.Contains(t, body, "Unknown Nebula")
	require.Contains(t, body, `href="/create"`)
	require.NotContains(t, body, "/community/my-planet/join")
}

func TestDetailMissingCommunityIsNotFound(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t), moduletest.Request(http.MethodGet, "/community/nowhere", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), "Community not found")
}

func TestJoinRedirectsToLandingWithNotice(t *testing.T) {
	t.Parallel()

	m := newModule(t)
	rr := moduletest.Serve(t, m, moduletest.Request(http.MethodPost, "/community/book-worms/join", nil))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/?joined=book-worms", rr.Header().Get("Location"))

	var sawFlash bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == flash.CookieName && c.Value != "" {
			sawFlash = true
		}
	}
	require.True(t, sawFlash)

	detail := moduletest.Serve(t, m, moduletest.Request(http.MethodGet, "/community/book-worms", nil))
	require.Contains(t, detail.Body.String(), "835 Citizens")
}

func TestJoinMyPlanetLeavesCatalogAlone(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t), moduletest.Request(http.MethodPost, "/community/my-planet/join", nil))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/?joined=my-planet", rr.Header().Get("Location"))
}

func TestJoinHTMXUsesRedirectHeader(t *testing.T) {
	t.Parallel()

	req := moduletest.Request(http.MethodPost, "/community/book-worms/join", nil)
	req.Header.Set("HX-Request", "true")
	rr := moduletest.Serve(t, newModule(t), req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "/?joined=book-worms", rr.Header().Get("HX-Redirect"))
}

func TestJoinMissingCommunityIsNotFound(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t), moduletest.Request(http.MethodPost, "/community/nowhere/join", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnknownSubpathIsNotFound(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t), moduletest.Request(http.MethodGet, "/community/book-worms/members", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestJoinRequiresPost(t *testing.T) {
	t.Parallel()

	rr := moduletest.Serve(t, newModule(t), moduletest.Request(http.MethodGet, "/community/book-worms/join", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}
