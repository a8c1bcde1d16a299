package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/storelift/croscan/internal/jobs"
	"github.com/storelift/croscan/internal/scan"
)

// WorkerOptions holds flags for the worker command.
type WorkerOptions struct {
	ScanOptions
	Redis   string
	RedisDB int
}

// NewWorkerCommand creates the worker command.
func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WorkerOptions{}
	opts.RootOptions = rootOpts
	opts.PageSize = scan.DefaultPageSize
	opts.MaxPages = scan.DefaultMaxPages
	opts.Top = scan.DefaultTopN

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume scan jobs from the redis queue",
		Long: `Run a scan worker: block on the redis queue, execute each scan, and
record job state and results back into redis. Runs until interrupted.

Example:
  croscan worker --redis localhost:6379 --db ./croscan.db --fixture ./products.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Redis, "redis", "", "redis address (host:port) (required)")
	cmd.Flags().IntVar(&opts.RedisDB, "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "path to JSON product fixture (required)")
	_ = cmd.MarkFlagRequired("redis")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}

func runWorker(opts *WorkerOptions, cmd *cobra.Command) error {
	scanner, st, err := buildScanner(&opts.ScanOptions)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	queue, err := jobs.NewRedisQueue(opts.Redis, opts.RedisDB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to connect to redis", err)
	}
	defer queue.Close()

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	slog.Info("worker starting", "redis", opts.Redis, "db", opts.Database)
	if err := queue.Work(ctx, scanner); err != nil {
		return WrapExitError(ExitFailure, "worker error", err)
	}

	slog.Info("worker stopped gracefully")
	return nil
}
