package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storelift/croscan/internal/jobs"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Redis   string
	RedisDB int
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status <job-id>",
		Short: "Report the state of a queued scan job",
		Long: `Report the state of a scan job previously enqueued on the redis
queue. Unknown or expired job ids report state "unknown".

Example:
  croscan status scan-shop-123-1748779200000 --redis localhost:6379`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Redis, "redis", "", "redis address (host:port) (required)")
	cmd.Flags().IntVar(&opts.RedisDB, "redis-db", 0, "redis database number")
	_ = cmd.MarkFlagRequired("redis")

	return cmd
}

func runStatus(opts *StatusOptions, jobID string, cmd *cobra.Command) error {
	queue, err := jobs.NewRedisQueue(opts.Redis, opts.RedisDB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to connect to redis", err)
	}
	defer queue.Close()

	status, err := jobs.NewService(queue).JobStatus(cmd.Context(), jobID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read job status", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		return formatter.Success(status)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Job %s: %s\n", jobID, status.State)
	if status.Result != nil {
		fmt.Fprintf(out, "Recommendations created: %d\n", status.Result.RecommendationsCreated)
	}
	if status.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", status.Error)
	}
	return nil
}
