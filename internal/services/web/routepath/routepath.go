// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root   = "/"
	Health = "/healthz"

	StaticPrefix = "/static/"

	Galaxy = "/galaxy"
	// GalaxyPrefix also serves /galaxy; the comment wall has its own prefix.
	GalaxyPrefix = "/galaxy/"

	CommunityPrefix      = "/community/"
	CommunityPattern     = CommunityPrefix + "{communityID}"
	CommunityJoinPattern = CommunityPrefix + "{communityID}/join"
	// MyPlanetID selects the visitor's own planet on the community routes.
	MyPlanetID = "my-planet"

	Create          = "/create"
	CreatePrefix    = "/create/"
	CreateSuggest   = "/create/suggest"
	CreateCustomize = "/create/customize"

	Comments           = "/galaxy-comments"
	CommentsPrefix     = "/galaxy-comments/"
	CommentLikePattern = CommentsPrefix + "{commentID}/like"

	JoinedQueryKey    = "joined"
	SearchQueryKey    = "q"
	PageSizeQueryKey  = "page_size"
	PageTokenQueryKey = "page_token"

	APISearchPrefix       = "/api/search/"
	APICommunitiesPrefix  = "/api/communities/"
	APICommunityPattern   = APICommunitiesPrefix + "{communityID}"
	APICommunityJoin      = APICommunitiesPrefix + "{communityID}/join"
	APIPlanetPrefix       = "/api/planet/"
	APIPlanetRings        = "/api/planet/rings"
	APIPlanetMoons        = "/api/planet/moons"
	APIPlanetSuggest      = "/api/planet/description/suggest"
	APICommentsPrefix     = "/api/comments/"
	APICommentLikePattern = APICommentsPrefix + "{commentID}/like"
	APICommentMovePattern = APICommentsPrefix + "{commentID}/position"
	APICommentPattern     = APICommentsPrefix + "{commentID}"
)

// Community returns the community detail route.
func Community(communityID string) string {
	return CommunityPrefix + escapeSegment(communityID)
}

// CommunityJoin returns the community join form route.
func CommunityJoin(communityID string) string {
	return Community(communityID) + "/join"
}

// MyPlanet returns the visitor planet detail route.
func MyPlanet() string {
	return Community(MyPlanetID)
}

// GalaxySearch returns the galaxy list route filtered by query.
func GalaxySearch(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return Galaxy
	}
	return Galaxy + "?" + SearchQueryKey + "=" + url.QueryEscape(query)
}

// RootWithJoined returns the landing route highlighting a joined community.
func RootWithJoined(communityID string) string {
	communityID = strings.TrimSpace(communityID)
	if communityID == "" {
		return Root
	}
	return Root + "?" + JoinedQueryKey + "=" + url.QueryEscape(communityID)
}

// CommentLike returns the comment like form route.
func CommentLike(commentID string) string {
	return CommentsPrefix + escapeSegment(commentID) + "/like"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
