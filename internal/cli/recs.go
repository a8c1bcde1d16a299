package cli

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/storelift/croscan/internal/store"
)

// RecsOptions holds flags for the recs command.
type RecsOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewRecsCommand creates the recs command.
func NewRecsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "recs <owner-id>",
		Short: "List stored recommendations for an owner",
		Long: `List an owner's stored recommendations in rank order, as written by
the most recent scan.

Example:
  croscan recs shop-123 --db ./croscan.db
  croscan recs shop-123 --db ./croscan.db --limit 10 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecs(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum rows to return (0 = all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRecs(opts *RecsOptions, ownerID string, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	recs, err := st.ListByOwner(cmd.Context(), ownerID, opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list recommendations", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		return formatter.Success(recs)
	}

	if len(recs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No recommendations stored for %s\n", ownerID)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tRULE\tENTITY\tSEVERITY\tSTATUS\tRATIONALE")
	for _, r := range recs {
		fmt.Fprintf(w, "%d\t%s\t%s/%s\t%s\t%s\t%s\n",
			r.Pos, r.RuleID, r.EntityType, r.EntityID, r.Severity, r.Status, r.Rationale)
	}
	return w.Flush()
}
