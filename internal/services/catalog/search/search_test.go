package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/seed"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
)

type staticSource struct {
	communities []storage.Community
	err         error
}

func (s staticSource) AllCommunities(context.Context) ([]storage.Community, error) {
	return s.communities, s.err
}

func defaultSource(t *testing.T) staticSource {
	t.Helper()
	communities := make([]storage.Community, 0, len(seed.Default()))
	for _, community := range seed.Default() {
		normalized, err := storage.Normalize(community)
		if err != nil {
			t.Fatalf("normalize %s: %v", community.ID, err)
		}
		communities = append(communities, normalized)
	}
	return staticSource{communities: communities}
}

func TestNormalizeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "bicycle", want: "bicycle"},
		{raw: "  Art \t", want: "Art"},
		{raw: "", wantErr: true},
		{raw: "   ", wantErr: true},
	}
	for _, tc := range tests {
		got, err := NormalizeQuery(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrEmptyQuery) {
				t.Fatalf("NormalizeQuery(%q) error = %v, want %v", tc.raw, err, ErrEmptyQuery)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeQuery(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeQuery(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestEmptyQueryIsInvalidInput(t *testing.T) {
	t.Parallel()

	if got := apperrors.HTTPStatus(ErrEmptyQuery); got != 400 {
		t.Fatalf("status = %d, want 400", got)
	}
	title, message := apperrors.Public(ErrEmptyQuery)
	if title != EmptyQueryTitle || message != EmptyQueryMessage {
		t.Fatalf("public = (%q, %q)", title, message)
	}
}

func TestMatchesIsCaseInsensitiveAcrossFields(t *testing.T) {
	t.Parallel()

	community := storage.Community{
		ID:          "bicycle-riders",
		Name:        "Bicycle Riders",
		Description: "Cycling & Adventure",
		Interests:   []string{"sports", "outdoor"},
	}
	tests := []struct {
		query string
		want  bool
	}{
		{query: "BICYCLE", want: true},
		{query: "riders", want: true},
		{query: "adventure", want: true},
		{query: "OUTDOOR", want: true},
		{query: "port", want: true},
		{query: "knitting", want: false},
	}
	for _, tc := range tests {
		if got := Matches(community, tc.query); got != tc.want {
			t.Fatalf("Matches(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestSearchEveryResultMatches(t *testing.T) {
	t.Parallel()

	source := defaultSource(t)
	byID := map[string]storage.Community{}
	for _, community := range source.communities {
		byID[community.ID] = community
	}
	for _, query := range []string{"a", "art", "DESIGN", "development", "o", "zen", "music"} {
		response, err := Search(context.Background(), source, query)
		if err != nil {
			t.Fatalf("search %q: %v", query, err)
		}
		if response.Total != len(response.Results) {
			t.Fatalf("total = %d, results = %d", response.Total, len(response.Results))
		}
		for _, result := range response.Results {
			if !Matches(byID[result.ID], query) {
				t.Fatalf("result %s does not match %q", result.ID, query)
			}
		}
	}
}

func TestSearchOrdersNameMatchesFirstThenMembers(t *testing.T) {
	t.Parallel()

	source := defaultSource(t)
	members := map[string]int{}
	for _, community := range source.communities {
		members[community.ID] = community.Members
	}
	for _, query := range []string{"a", "e", "o", "art", "design"} {
		response, err := Search(context.Background(), source, query)
		if err != nil {
			t.Fatalf("search %q: %v", query, err)
		}
		lower := strings.ToLower(query)
		for i := 1; i < len(response.Results); i++ {
			prev, cur := response.Results[i-1], response.Results[i]
			prevName := strings.Contains(strings.ToLower(prev.Name), lower)
			curName := strings.Contains(strings.ToLower(cur.Name), lower)
			if !prevName && curName {
				t.Fatalf("query %q: name match %s after non-name match %s", query, cur.ID, prev.ID)
			}
			if prevName == curName && members[prev.ID] < members[cur.ID] {
				t.Fatalf("query %q: %s (%d) before %s (%d)", query, prev.ID, members[prev.ID], cur.ID, members[cur.ID])
			}
		}
	}
}

func TestSearchBicycle(t *testing.T) {
	t.Parallel()

	response, err := Search(context.Background(), defaultSource(t), "  bicycle ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if response.Query != "bicycle" {
		t.Fatalf("query = %q, want %q", response.Query, "bicycle")
	}
	want := Result{
		ID:          "bicycle-riders",
		Name:        "Bicycle Riders",
		Description: "Cycling & Adventure",
		ImageURL:    "/planets/bicycle-riders.png",
	}
	if len(response.Results) != 1 || response.Results[0] != want {
		t.Fatalf("results = %+v, want [%+v]", response.Results, want)
	}
}

func TestSearchKeepsQueryCasing(t *testing.T) {
	t.Parallel()

	response, err := Search(context.Background(), defaultSource(t), "ArT")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if response.Query != "ArT" {
		t.Fatalf("query = %q, want %q", response.Query, "ArT")
	}
	// Name matches: none. Interest matches: analog-soul (234), neon-valley (423).
	got := make([]string, 0, len(response.Results))
	for _, result := range response.Results {
		got = append(got, result.ID)
	}
	if strings.Join(got, ",") != "neon-valley,analog-soul" {
		t.Fatalf("order = %v", got)
	}
}

func TestSearchNoMatchesReturnsEmptyResults(t *testing.T) {
	t.Parallel()

	response, err := Search(context.Background(), defaultSource(t), "quantum knitting")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if response.Results == nil {
		t.Fatal("expected non-nil results slice")
	}
	if response.Total != 0 {
		t.Fatalf("total = %d, want 0", response.Total)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	_, err := Search(context.Background(), defaultSource(t), " ")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("error = %v, want %v", err, ErrEmptyQuery)
	}
}

func TestSearchWrapsSourceErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Search(context.Background(), staticSource{err: boom}, "art")
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
	if got := apperrors.HTTPStatus(err); got != 500 {
		t.Fatalf("status = %d, want 500", got)
	}
}

func TestRankTiesKeepCatalogOrder(t *testing.T) {
	t.Parallel()

	communities := []storage.Community{
		{ID: "b", Name: "Beta Garden", Members: 10},
		{ID: "a", Name: "Alpha Garden", Members: 10},
		{ID: "c", Name: "Plants", Description: "garden club", Members: 50},
	}
	ranked := Rank(communities, "garden")
	got := []string{ranked[0].ID, ranked[1].ID, ranked[2].ID}
	if strings.Join(got, ",") != "b,a,c" {
		t.Fatalf("order = %v, want [b a c]", got)
	}
}
