// Package galaxyctl implements the operator CLI for seeding and inspecting
// the community catalog.
package galaxyctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	entrypoint "github.com/louisbranch/cozy.galaxy/internal/platform/cmd"
	"github.com/louisbranch/cozy.galaxy/internal/platform/timeouts"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/seed"
	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
)

// GeneratorFactory builds the description generator used by suggest.
type GeneratorFactory func(ctx context.Context, cfg designgen.Config) (designgen.Generator, error)

// Options customizes command dependencies.
type Options struct {
	Out          io.Writer
	NewGenerator GeneratorFactory
}

// Execute runs the CLI with args.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand(Options{})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the galaxyctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.NewGenerator == nil {
		opts.NewGenerator = designgen.New
	}
	root := &cobra.Command{
		Use:           entrypoint.ServiceGalaxyCtl,
		Short:         "Operate the cozy galaxy catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}
	root.AddCommand(seedCmd(), searchCmd(), suggestCmd(opts.NewGenerator))
	return root
}

func seedCmd() *cobra.Command {
	var dbPath, file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert communities into a SQLite catalog",
		Long:  "Upserts the communities from --file, or the built-in catalog when --file is empty, into the SQLite catalog at --db.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(dbPath) == "" {
				return fmt.Errorf("--db is required")
			}
			communities := seed.Default()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open seed file: %w", err)
				}
				defer f.Close()
				communities, err = seed.LoadYAML(f)
				if err != nil {
					return err
				}
			}
			store, err := openStore(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := seed.Apply(cmd.Context(), store, communities); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d communities into %s\n", len(communities), dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "catalog SQLite path")
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog file")
	return cmd
}

func searchCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the catalog and print the JSON response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			service, err := catalog.NewService(store)
			if err != nil {
				return err
			}
			resp, err := service.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "catalog SQLite path; empty searches the built-in catalog")
	return cmd
}

func suggestCmd(newGenerator GeneratorFactory) *cobra.Command {
	var color, surface, hint string
	var rings, moons bool
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the model for a planet description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := planet.Default()
			if err := state.SetColor(color); err != nil {
				return err
			}
			if err := state.SetSurface(planet.Surface(surface)); err != nil {
				return err
			}
			state.HasRings = rings
			state.HasMoons = moons

			var cfg designgen.Config
			if err := entrypoint.ParseConfig(&cfg); err != nil {
				return err
			}
			generator, err := newGenerator(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Generation)
			defer cancel()
			text, err := generator.Suggest(ctx, designgen.RequestFromState(state, hint))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	defaults := planet.Default()
	cmd.Flags().StringVar(&color, "color", defaults.Color, "planet color as #RRGGBB")
	cmd.Flags().StringVar(&surface, "surface", string(defaults.SurfaceType), "surface: clay, moss, sand or lavender")
	cmd.Flags().StringVar(&hint, "hint", "", "optional idea for the description")
	cmd.Flags().BoolVar(&rings, "rings", false, "planet has rings")
	cmd.Flags().BoolVar(&moons, "moons", false, "planet has moons")
	return cmd
}

func openStore(ctx context.Context, path string) (catalog.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
	defer cancel()
	return catalog.OpenStore(ctx, path)
}
