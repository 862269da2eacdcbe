package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenday/screenday/internal/aggregate"
	"github.com/screenday/screenday/internal/store"
)

// SummaryOptions holds flags for the summary command.
type SummaryOptions struct {
	*RootOptions
	Date    string
	Scrolls bool
}

// summaryPayload is the JSON output shape.
type summaryPayload struct {
	Summary aggregate.DeviceSummary   `json:"summary"`
	Apps    []aggregate.UsageRecord   `json:"apps"`
	Scrolls []aggregate.ScrollSession `json:"scrolls,omitempty"`
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SummaryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "summary",
		Short:         "Show persisted derived rows for one date",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "calendar date (YYYY-MM-DD), default today")
	cmd.Flags().BoolVar(&opts.Scrolls, "scrolls", false, "include scroll sessions")

	return cmd
}

func runSummary(ctx context.Context, opts *SummaryOptions, cmd *cobra.Command) error {
	day, err := resolveDay(opts.Date)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid date", err)
	}
	date := day.In(time.Local).Format("2006-01-02")

	st, _, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.SummaryForDate(ctx, date)
	if errors.Is(err, store.ErrNoSummary) {
		summary = aggregate.EmptySummary(date, 0)
	} else if err != nil {
		return WrapExitError(ExitFailure, "failed to read summary", err)
	}

	apps, err := st.UsageForDate(ctx, date)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read usage records", err)
	}

	payload := summaryPayload{Summary: summary, Apps: apps}
	if opts.Scrolls {
		payload.Scrolls, err = st.ScrollSessionsForDate(ctx, date)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to read scroll sessions", err)
		}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.JSON(payload)
	}

	out.Textf("%s  usage %s  unlocks %d  opens %d  notifications %d\n",
		summary.Date,
		formatMillis(summary.TotalUsageTime),
		summary.UnlockCount,
		summary.AppOpens,
		summary.NotificationCount,
	)
	for _, app := range apps {
		out.Textf("  %-40s usage %-10s active %-10s opens %-3d notif %d\n",
			app.PackageName,
			formatMillis(app.UsageTime),
			formatMillis(app.ActiveTime),
			app.OpenCount,
			app.NotificationCount,
		)
	}
	for _, sess := range payload.Scrolls {
		out.Textf("  scroll %-33s %s -> %s amount %d (%s, %s)\n",
			sess.PackageName,
			time.UnixMilli(sess.StartTime).In(time.Local).Format("15:04:05"),
			time.UnixMilli(sess.EndTime).In(time.Local).Format("15:04:05"),
			sess.ScrollAmount,
			sess.DataType,
			sess.EndReason,
		)
	}
	return nil
}

// formatMillis renders a millisecond duration compactly (1h2m3s).
func formatMillis(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}
