package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"git.home.luguber.info/inful/docsite/internal/eventstore"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int           `short:"n" default:"20" help:"Maximum number of builds to list (0 lists all)"`
	Since time.Duration `help:"Only list builds started within this duration (e.g. 24h)"`
	JSON  bool          `help:"Print summaries as JSON"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return derrors.ConfigError("build history is not enabled (set history.path)").Build()
	}
	store, err := eventstore.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var since time.Time
	if h.Since > 0 {
		since = time.Now().Add(-h.Since)
	}
	summaries, err := eventstore.History(context.Background(), store, since, h.Limit)
	if err != nil {
		return err
	}
	if h.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	return printHistory(os.Stdout, summaries, time.Now())
}

func printHistory(w io.Writer, summaries []eventstore.Summary, now time.Time) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No builds recorded.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUILD\tSTARTED\tTRIGGER\tSTATUS\tDURATION\tPACKAGES\tWRITTEN\tDETAIL")
	for _, s := range summaries {
		duration := "-"
		if !s.CompletedAt.IsZero() {
			duration = s.Duration.Round(time.Millisecond).String()
		}
		detail := ""
		if s.Status == eventstore.StatusFailed {
			detail = s.ErrorStage + ": " + s.Error
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			shortID(s.BuildID),
			humanize.RelTime(s.StartedAt, now, "ago", "from now"),
			s.Trigger, s.Status, duration, s.Packages, s.Written, detail)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
