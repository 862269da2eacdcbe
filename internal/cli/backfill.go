package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/screenday/screenday/internal/pipeline"
)

// BackfillOptions holds flags for the backfill command.
type BackfillOptions struct {
	*RootOptions
	Days int
}

// NewBackfillCommand creates the backfill command.
func NewBackfillCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackfillOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Replay the daily pipeline over a historical window",
		Long: `Recompute derived rows for the N days before today (today excluded),
one date at a time, newest first. Stops on the first failed date; dates
already processed stay persisted.

Example:
  screenday backfill --db ./screenday.db --days 30`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackfill(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", 7, "number of days to backfill")

	return cmd
}

func runBackfill(ctx context.Context, opts *BackfillOptions) error {
	st, cfg, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	runner := pipeline.NewRunner(st, st, st, cfg, pipeline.WithCheckpoints(st))
	if err := runner.Backfill(ctx, opts.Days); err != nil {
		return WrapExitError(ExitFailure, "backfill failed", err)
	}
	return nil
}
