package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/screenday/screenday/internal/event"
)

// ingestRecord is one NDJSON line from a collector. Either a numeric
// external code or a symbolic type name identifies the event; the code
// wins when both are present.
type ingestRecord struct {
	PackageName  string `json:"package_name"`
	ClassName    string `json:"class_name"`
	Source       string `json:"source"`
	Code         *int   `json:"code"`
	Type         string `json:"type"`
	Timestamp    int64  `json:"timestamp"`
	Date         string `json:"date"`
	Value        *int64 `json:"value"`
	ScrollDeltaX int64  `json:"scroll_delta_x"`
	ScrollDeltaY int64  `json:"scroll_delta_y"`
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <events.ndjson>",
		Short: "Append collector events to the event log",
		Long: `Read newline-delimited JSON event records from a collector dump and
append them to the event log. Use "-" to read from stdin.

External event codes are mapped onto the internal event types; records
with unmapped codes are dropped (counted, not errors). Malformed JSON
lines abort the ingest before anything is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), rootOpts, args[0])
		},
	}
	return cmd
}

func runIngest(ctx context.Context, opts *RootOptions, path string) error {
	var in io.Reader
	if path == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open events file", err)
		}
		defer f.Close()
		in = f
	}

	events, dropped, err := decodeEvents(in)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to decode events", err)
	}

	st, _, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.AppendEvents(ctx, events)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to append events", err)
	}

	slog.Info("ingested events", "written", n, "dropped", dropped)
	return nil
}

// decodeEvents parses NDJSON records and maps them onto internal events.
// Records whose code or type has no internal counterpart are dropped and
// counted; malformed lines are errors.
func decodeEvents(in io.Reader) ([]event.Raw, int, error) {
	var (
		events  []event.Raw
		dropped int
		line    int
	)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec ingestRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}

		source := event.Source(rec.Source)
		var (
			t  event.Type
			ok bool
		)
		if rec.Code != nil {
			t, ok = event.MapExternal(source, *rec.Code)
		} else {
			t, ok = event.ParseType(rec.Type)
		}
		if !ok {
			dropped++
			continue
		}

		events = append(events, event.Raw{
			PackageName:  rec.PackageName,
			ClassName:    rec.ClassName,
			Type:         t,
			Timestamp:    rec.Timestamp,
			Date:         rec.Date,
			Source:       source,
			Value:        rec.Value,
			ScrollDeltaX: rec.ScrollDeltaX,
			ScrollDeltaY: rec.ScrollDeltaY,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	return events, dropped, nil
}
