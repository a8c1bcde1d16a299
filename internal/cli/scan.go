package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/storelift/croscan/internal/catalog"
	"github.com/storelift/croscan/internal/rules"
	"github.com/storelift/croscan/internal/scan"
	"github.com/storelift/croscan/internal/store"
)

// ScanOptions holds flags for the scan command.
type ScanOptions struct {
	*RootOptions
	Database string
	Fixture  string
	PageSize int
	MaxPages int
	Top      int
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan <owner-id>",
		Short: "Scan a catalog and store ranked recommendations",
		Long: `Run one scan for the owner: fetch the catalog, evaluate every rule,
rank the matches, and replace the owner's stored recommendations.

The catalog is read from a JSON product fixture; the SQLite database is
created if it does not exist.

Example:
  croscan scan shop-123 --db ./croscan.db --fixture ./products.json
  croscan scan shop-123 --db ./croscan.db --fixture ./products.json --top 10 --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "path to JSON product fixture (required)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", scan.DefaultPageSize, "catalog page size")
	cmd.Flags().IntVar(&opts.MaxPages, "max-pages", scan.DefaultMaxPages, "maximum catalog pages per scan")
	cmd.Flags().IntVar(&opts.Top, "top", scan.DefaultTopN, "how many ranked matches to persist")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}

func runScan(opts *ScanOptions, ownerID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scanner, st, err := buildScanner(opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	result, err := scanner.Run(cmd.Context(), ownerID)
	if err != nil {
		return WrapExitError(ExitFailure, "scan failed", err)
	}

	return formatter.SuccessText(result, "Scan complete: %d recommendation(s) stored for %s",
		result.RecommendationsCreated, ownerID)
}

// buildScanner assembles registry, fixture source, and store for the
// scan and worker commands. The caller owns the returned store.
func buildScanner(opts *ScanOptions) (*scan.Scanner, *store.Store, error) {
	registry, err := rules.Load()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load rule catalog", err)
	}
	slog.Debug("rule catalog loaded", "rules", registry.Len())

	source, err := catalog.LoadFixture(opts.Fixture)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load product fixture", err)
	}
	slog.Debug("product fixture loaded", "path", opts.Fixture, "products", len(source.Products))

	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	scanner := scan.New(registry, catalog.StaticResolver{}, source, st,
		scan.WithPageSize(opts.PageSize),
		scan.WithMaxPages(opts.MaxPages),
		scan.WithTopN(opts.Top),
	)
	return scanner, st, nil
}
