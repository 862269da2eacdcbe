package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenday/screenday/internal/pipeline"
)

// AggregateOptions holds flags for the aggregate command.
type AggregateOptions struct {
	*RootOptions
	Date string
}

// NewAggregateCommand creates the aggregate command.
func NewAggregateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AggregateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Recompute derived rows for one date",
		Long: `Recompute scroll sessions, per-app usage records, and the device
summary for one calendar date, replacing previous rows atomically.

A date with no events clears its derived rows. Defaults to today.

Example:
  screenday aggregate --db ./screenday.db --date 2026-08-31`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "calendar date (YYYY-MM-DD), default today")

	return cmd
}

func runAggregate(ctx context.Context, opts *AggregateOptions) error {
	day, err := resolveDay(opts.Date)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid date", err)
	}

	st, cfg, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	runner := pipeline.NewRunner(st, st, st, cfg, pipeline.WithCheckpoints(st))
	if err := runner.AggregateDay(ctx, day); err != nil {
		return WrapExitError(ExitFailure, "aggregation failed", err)
	}
	return nil
}

// resolveDay parses a YYYY-MM-DD date in the local timezone, defaulting
// to now when empty.
func resolveDay(date string) (time.Time, error) {
	if date == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", date, err)
	}
	return day, nil
}
