package galaxyctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/search"
	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
)

const teaHouseYAML = `communities:
  - id: tea-house
    name: Tea House
    description: Slow Afternoons
    interests: [tea, calm]
    members: 12
    color: "#b2f2bb"
`

type recordingGenerator struct {
	got designgen.Request
}

func (g *recordingGenerator) Suggest(_ context.Context, req designgen.Request) (string, error) {
	g.got = req
	return "A mossy little world.", nil
}

func run(t *testing.T, opts Options, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	opts.Out = &out
	root := NewRootCommand(opts)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedThenSearch(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.db")
	file := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(file, []byte(teaHouseYAML), 0o600))

	out, err := run(t, Options{}, "seed", "--db", db, "--file", file)
	require.NoError(t, err)
	require.Contains(t, out, "seeded 1 communities")

	out, err = run(t, Options{}, "search", "tea", "house", "--db", db)
	require.NoError(t, err)
	var resp search.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "tea house", resp.Query)
	require.Equal(t, 1, resp.Total)
	require.Equal(t, "tea-house", resp.Results[0].ID)
}

func TestSeedRequiresDB(t *testing.T) {
	_, err := run(t, Options{}, "seed")
	require.ErrorContains(t, err, "--db is required")
}

func TestSeedRejectsMissingFile(t *testing.T) {
	_, err := run(t, Options{}, "seed", "--db", filepath.Join(t.TempDir(), "c.db"), "--file", "missing.yaml")
	require.ErrorContains(t, err, "open seed file")
}

func TestSearchBuiltInCatalog(t *testing.T) {
	out, err := run(t, Options{}, "search", "bicycle")
	require.NoError(t, err)
	require.Contains(t, out, `"bicycle-riders"`)
}

func TestSearchRequiresTerm(t *testing.T) {
	_, err := run(t, Options{}, "search")
	require.Error(t, err)
}

func TestSuggestPassesPlanetToGenerator(t *testing.T) {
	generator := &recordingGenerator{}
	opts := Options{NewGenerator: func(context.Context, designgen.Config) (designgen.Generator, error) {
		return generator, nil
	}}

	out, err := run(t, opts, "suggest", "--color", "#C1E1C1", "--surface", "moss", "--rings", "--hint", "cozy")
	require.NoError(t, err)
	require.Equal(t, "A mossy little world.\n", out)
	require.Equal(t, designgen.Request{
		Color:    "#C1E1C1",
		Surface:  planet.SurfaceMoss,
		HasRings: true,
		Hint:     "cozy",
	}, generator.got)
}

func TestSuggestValidatesPlanet(t *testing.T) {
	_, err := run(t, Options{}, "suggest", "--color", "teal")
	require.ErrorIs(t, err, planet.ErrInvalidColor)

	_, err = run(t, Options{}, "suggest", "--surface", "lava")
	require.Error(t, err)
}

func TestSuggestWithoutAPIKeyIsUnavailable(t *testing.T) {
	t.Setenv("COZY_GALAXY_GENAI_API_KEY", "")
	_, err := run(t, Options{}, "suggest")
	require.True(t, errors.Is(err, designgen.ErrUnavailable))
}
