package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/search"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const communityURIScheme = "community://"

// Catalog is the catalog surface the MCP tools read.
type Catalog interface {
	Search(ctx context.Context, query string) (search.Response, error)
	Get(ctx context.Context, id string) (storage.Community, error)
	All(ctx context.Context) ([]storage.Community, error)
}

// SearchCommunitiesInput is the search_communities tool input.
type SearchCommunitiesInput struct {
	Query string `json:"query" jsonschema:"free text matched against names, descriptions and interests"`
}

// GetCommunityInput is the get_community tool input.
type GetCommunityInput struct {
	ID string `json:"id" jsonschema:"community id, for example bicycle-riders"`
}

// Community is one community as the tools and resources return it.
type Community struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Interests   []string `json:"interests"`
	ImageURL    string   `json:"imageUrl"`
	Members     int      `json:"members"`
	Color       string   `json:"color"`
	Location    string   `json:"location,omitempty"`
}

// CommunityListPayload is the galaxy://communities resource body.
type CommunityListPayload struct {
	Communities []Community `json:"communities"`
}

// SearchCommunitiesTool defines the search tool.
func SearchCommunitiesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_communities",
		Description: "Searches the galaxy's communities by name, description or interest. Name matches rank first, then larger communities.",
	}
}

// GetCommunityTool defines the community lookup tool.
func GetCommunityTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_community",
		Description: "Returns one community with its members, color and location",
	}
}

// SearchCommunitiesHandler runs a catalog search.
func SearchCommunitiesHandler(catalog Catalog) mcp.ToolHandlerFor[SearchCommunitiesInput, search.Response] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchCommunitiesInput) (*mcp.CallToolResult, search.Response, error) {
		resp, err := catalog.Search(ctx, input.Query)
		if err != nil {
			return nil, search.Response{}, publicError("search communities", err)
		}
		return nil, resp, nil
	}
}

// GetCommunityHandler looks up one community.
func GetCommunityHandler(catalog Catalog) mcp.ToolHandlerFor[GetCommunityInput, Community] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetCommunityInput) (*mcp.CallToolResult, Community, error) {
		id := strings.TrimSpace(input.ID)
		if id == "" {
			return nil, Community{}, errors.New("id is required")
		}
		community, err := catalog.Get(ctx, id)
		if err != nil {
			return nil, Community{}, publicError("get community", err)
		}
		return nil, communityFromStorage(community), nil
	}
}

// CommunityListResource describes the readable community listing.
func CommunityListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "community_list",
		Title:       "Communities",
		Description: "Every community in the galaxy, in catalog order",
		MIMEType:    "application/json",
		URI:         "galaxy://communities",
	}
}

// CommunityResourceTemplate describes one readable community.
func CommunityResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "community",
		Title:       "Community",
		Description: "One community. URI format: community://{community_id}",
		MIMEType:    "application/json",
		URITemplate: communityURIScheme + "{community_id}",
	}
}

// CommunityListResourceHandler reads the community listing.
func CommunityListResourceHandler(catalog Catalog) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		communities, err := catalog.All(ctx)
		if err != nil {
			return nil, publicError("list communities", err)
		}
		payload := CommunityListPayload{Communities: make([]Community, 0, len(communities))}
		for _, c := range communities {
			payload.Communities = append(payload.Communities, communityFromStorage(c))
		}
		return jsonResource(CommunityListResource().URI, payload)
	}
}

// CommunityResourceHandler reads one community addressed by URI.
func CommunityResourceHandler(catalog Catalog) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("community id is required; use URI format %s{community_id}", communityURIScheme)
		}
		uri := req.Params.URI
		id, err := parseCommunityURI(uri)
		if err != nil {
			return nil, err
		}
		community, err := catalog.Get(ctx, id)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				return nil, mcp.ResourceNotFoundError(uri)
			}
			return nil, publicError("get community", err)
		}
		return jsonResource(uri, communityFromStorage(community))
	}
}

func parseCommunityURI(uri string) (string, error) {
	id, ok := strings.CutPrefix(strings.TrimSpace(uri), communityURIScheme)
	id = strings.Trim(id, "/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("invalid community URI %q; use %s{community_id}", uri, communityURIScheme)
	}
	return id, nil
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// publicError keeps typed messages and hides untyped failures.
func publicError(op string, err error) error {
	title, message := apperrors.Public(err)
	if apperrors.KindOf(err) == apperrors.KindUnknown {
		return fmt.Errorf("%s failed: %s", op, message)
	}
	return fmt.Errorf("%s: %s", title, message)
}

func communityFromStorage(c storage.Community) Community {
	interests := c.Interests
	if interests == nil {
		interests = []string{}
	}
	return Community{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Interests:   interests,
		ImageURL:    c.ImageURL,
		Members:     c.Members,
		Color:       c.Color,
		Location:    c.Location,
	}
}
