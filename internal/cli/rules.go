package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/storelift/croscan/internal/rules"
)

// RuleSummary is the listing projection of a rule.
type RuleSummary struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	Entities []string `json:"entities"`
	Title    string   `json:"title"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rule catalog",
		Long: `List every rule in the embedded catalog, optionally filtered by
category (trust, media, copy, pricing, variant_ux).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(rootOpts, category, cmd)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only rules in this category")

	return cmd
}

func runRules(opts *RootOptions, category string, cmd *cobra.Command) error {
	registry, err := rules.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load rule catalog", err)
	}

	list := registry.All()
	if category != "" {
		list = registry.ByCategory(category)
	}

	summaries := make([]RuleSummary, 0, len(list))
	for _, r := range list {
		entities := make([]string, 0, len(r.EntityTypes))
		for _, e := range r.EntityTypes {
			entities = append(entities, string(e))
		}
		summaries = append(summaries, RuleSummary{
			ID:       r.ID,
			Category: r.Category,
			Severity: string(r.Severity),
			Entities: entities,
			Title:    r.Title,
		})
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		return formatter.Success(summaries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tSEVERITY\tENTITIES\tTITLE")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Category, s.Severity,
			strings.Join(s.Entities, ","), s.Title)
	}
	return w.Flush()
}
