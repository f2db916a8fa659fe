// Package report renders the reconstructed session history: terminal tables,
// daily PDF reports, and JSON exports with optional encryption.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/avelkov/focusboard/internal/models"
	"github.com/avelkov/focusboard/internal/util"
)

var (
	cyan   = color.New(color.FgHiCyan).SprintFunc()
	green  = color.New(color.FgHiGreen).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
)

// modeLabel colors a session mode for terminal output.
func modeLabel(mode models.TimerMode) string {
	switch mode {
	case models.ModePomodoro:
		return green(string(mode))
	case models.ModeBreak:
		return yellow(string(mode))
	default:
		return cyan(string(mode))
	}
}

// WriteTable renders the sessions as an aligned table followed by a total of
// the focused time.
func WriteTable(w io.Writer, sessions []models.FocusSession) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"Date", "Start", "End", "Mode", "Card", "Duration"})

	var total time.Duration
	for _, s := range sessions {
		if err := table.Append([]string{
			s.Start.Format("2006-01-02"),
			s.Start.Format("15:04"),
			s.End.Format("15:04"),
			modeLabel(s.Mode),
			s.CardTitle,
			util.FormatDuration(s.Duration),
		}); err != nil {
			return err
		}
		if s.Mode != models.ModeBreak {
			total += s.Duration
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal focused: %s over %d sessions\n", green(util.FormatDuration(total)), len(sessions))
	return err
}
