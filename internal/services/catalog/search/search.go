// Package search filters and ranks catalog communities for a free-text term.
//
// A community matches when the term is a case-insensitive substring of its
// name, its description, or any of its interests. Matches are ordered with
// name matches first, then by descending member count. Communities that tie
// on both keep their catalog order.
package search

import (
	"context"
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"golang.org/x/text/cases"
)

// Public copy for the search boundary.
const (
	EmptyQueryTitle   = `Query parameter "q" is required and cannot be empty`
	EmptyQueryMessage = `Please provide a search term using the "q" query parameter`
	FailureMessage    = "An unexpected error occurred while processing your search"
)

// ErrEmptyQuery is returned when the term is missing or blank.
var ErrEmptyQuery = apperrors.E(apperrors.KindInvalidInput, EmptyQueryTitle, EmptyQueryMessage)

// Source lists communities in catalog order.
type Source interface {
	AllCommunities(ctx context.Context) ([]storage.Community, error)
}

// Result is the public projection of one matched community.
type Result struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Response is the search payload. Query echoes the trimmed term as given.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// NormalizeQuery trims raw and rejects blank terms.
func NormalizeQuery(raw string) (string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return "", ErrEmptyQuery
	}
	return query, nil
}

// Matcher tests communities against one folded term. It is not safe for
// concurrent use.
type Matcher struct {
	caser cases.Caser
	term  string
}

// NewMatcher folds query once for repeated matching.
func NewMatcher(query string) *Matcher {
	caser := cases.Fold()
	return &Matcher{caser: caser, term: caser.String(query)}
}

func (m *Matcher) contains(value string) bool {
	return strings.Contains(m.caser.String(value), m.term)
}

// NameMatches reports whether the term occurs in the community name.
func (m *Matcher) NameMatches(community storage.Community) bool {
	return m.contains(community.Name)
}

// Matches reports whether the term occurs in the name, description or any
// interest.
func (m *Matcher) Matches(community storage.Community) bool {
	if m.contains(community.Name) || m.contains(community.Description) {
		return true
	}
	return slices.ContainsFunc(community.Interests, m.contains)
}

// Matches is a convenience wrapper for a single comparison.
func Matches(community storage.Community, query string) bool {
	return NewMatcher(query).Matches(community)
}

// Rank filters communities by query and orders the matches.
func Rank(communities []storage.Community, query string) []storage.Community {
	matcher := NewMatcher(query)
	type candidate struct {
		community storage.Community
		nameMatch bool
	}
	candidates := make([]candidate, 0, len(communities))
	for _, community := range communities {
		if !matcher.Matches(community) {
			continue
		}
		candidates = append(candidates, candidate{community: community, nameMatch: matcher.NameMatches(community)})
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.nameMatch != b.nameMatch {
			if a.nameMatch {
				return -1
			}
			return 1
		}
		return b.community.Members - a.community.Members
	})
	ranked := make([]storage.Community, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.community
	}
	return ranked
}

// Build projects ranked communities into a response for query.
func Build(ranked []storage.Community, query string) Response {
	results := make([]Result, 0, len(ranked))
	for _, community := range ranked {
		results = append(results, Result{
			ID:          community.ID,
			Name:        community.Name,
			Description: community.Description,
			ImageURL:    community.ImageURL,
		})
	}
	return Response{Results: results, Total: len(results), Query: query}
}

// Search runs raw against every community in source.
func Search(ctx context.Context, source Source, raw string) (Response, error) {
	query, err := NormalizeQuery(raw)
	if err != nil {
		return Response{}, err
	}
	if source == nil {
		return Response{}, fmt.Errorf("search source is required")
	}
	communities, err := source.AllCommunities(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load communities: %w", err)
	}
	return Build(Rank(communities, query), query), nil
}
