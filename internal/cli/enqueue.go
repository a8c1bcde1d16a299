package cli

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/storelift/croscan/internal/jobs"
	"github.com/storelift/croscan/internal/scan"
)

// EnqueueOptions holds flags for the enqueue command.
type EnqueueOptions struct {
	ScanOptions
	Redis   string
	RedisDB int
}

// NewEnqueueCommand creates the enqueue command.
func NewEnqueueCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EnqueueOptions{}
	opts.RootOptions = rootOpts
	opts.PageSize = scan.DefaultPageSize
	opts.MaxPages = scan.DefaultMaxPages
	opts.Top = scan.DefaultTopN

	cmd := &cobra.Command{
		Use:   "enqueue <owner-id>",
		Short: "Submit a scan job and print its id",
		Long: `Submit a scan job for the owner.

With --redis the job is pushed to the redis queue and picked up by a
worker process; the command returns immediately with the job id. Without
--redis the job runs in-process (requires --db and --fixture) and the
command waits for it to finish.

Example:
  croscan enqueue shop-123 --redis localhost:6379
  croscan enqueue shop-123 --db ./croscan.db --fixture ./products.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnqueue(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Redis, "redis", "", "redis address (host:port); empty runs in-process")
	cmd.Flags().IntVar(&opts.RedisDB, "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (in-process mode)")
	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "path to JSON product fixture (in-process mode)")

	return cmd
}

// EnqueueResult is the JSON payload of a successful enqueue.
type EnqueueResult struct {
	JobID  string       `json:"jobId"`
	Status *jobs.Status `json:"status,omitempty"`
}

func runEnqueue(opts *EnqueueOptions, ownerID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Redis != "" {
		return enqueueRedis(opts, ownerID, formatter, cmd)
	}
	return enqueueInProcess(opts, ownerID, formatter, cmd)
}

func enqueueRedis(opts *EnqueueOptions, ownerID string, formatter *OutputFormatter, cmd *cobra.Command) error {
	queue, err := jobs.NewRedisQueue(opts.Redis, opts.RedisDB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to connect to redis", err)
	}
	defer queue.Close()

	svc := jobs.NewService(queue)
	jobID, err := svc.EnqueueScan(cmd.Context(), ownerID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to enqueue scan", err)
	}

	return formatter.SuccessText(EnqueueResult{JobID: jobID}, "Enqueued %s", jobID)
}

func enqueueInProcess(opts *EnqueueOptions, ownerID string, formatter *OutputFormatter, cmd *cobra.Command) error {
	if opts.Database == "" || opts.Fixture == "" {
		return WrapExitError(ExitCommandError, "in-process mode requires --db and --fixture", nil)
	}

	scanner, st, err := buildScanner(&opts.ScanOptions)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	queue := jobs.NewMemoryQueue(scanner)
	svc := jobs.NewService(queue)

	jobID, err := svc.EnqueueScan(cmd.Context(), ownerID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to enqueue scan", err)
	}
	if err := queue.Wait(); err != nil {
		return WrapExitError(ExitFailure, "scan job did not finish", err)
	}

	status, err := svc.JobStatus(cmd.Context(), jobID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read job status", err)
	}
	if status.State == jobs.StateFailed {
		_ = formatter.Error("E_SCAN", status.Error)
		return WrapExitError(ExitFailure, "scan failed", nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(EnqueueResult{JobID: jobID, Status: &status})
	}
	body, _ := json.Marshal(status)
	return formatter.SuccessText(nil, "Job %s finished: %s", jobID, body)
}
