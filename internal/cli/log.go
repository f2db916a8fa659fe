package cli

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelkov/focusboard/internal/board"
	"github.com/avelkov/focusboard/internal/models"
	"github.com/avelkov/focusboard/internal/report"
	"github.com/avelkov/focusboard/internal/timer"
)

var (
	flagLogDate string
	flagLogAll  bool
	flagLogCard string
)

var logCmd = &cobra.Command{
	Use:   "log [vault]",
	Short: "Print the session log as a table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := loadSessions(args)
		if err != nil {
			return err
		}
		if !flagLogAll {
			date, err := parseDateFlag(flagLogDate)
			if err != nil {
				return err
			}
			sessions = filterByDate(sessions, date)
		}
		if flagLogCard != "" {
			sessions = filterByCard(sessions, flagLogCard)
		}
		return report.WriteTable(os.Stdout, sessions)
	},
}

func init() {
	logCmd.Flags().StringVar(&flagLogDate, "date", "", "day to show, YYYY-MM-DD (default today)")
	logCmd.Flags().BoolVar(&flagLogAll, "all", false, "show the full history instead of one day")
	logCmd.Flags().StringVar(&flagLogCard, "card", "", "only sessions whose card title contains this text")
}

// loadSessions rebuilds the session history from the vault documents.
func loadSessions(args []string) ([]models.FocusSession, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	dir, err := resolveVault(db, args)
	if err != nil {
		return nil, err
	}
	vault, err := board.Open(dir)
	if err != nil {
		return nil, err
	}
	return timer.NewStore(vault).All(), nil
}

func filterByDate(sessions []models.FocusSession, date time.Time) []models.FocusSession {
	y, m, d := date.Date()
	var out []models.FocusSession
	for _, s := range sessions {
		sy, sm, sd := s.Start.Date()
		if sy == y && sm == m && sd == d {
			out = append(out, s)
		}
	}
	return out
}

func filterByCard(sessions []models.FocusSession, needle string) []models.FocusSession {
	needle = strings.ToLower(needle)
	var out []models.FocusSession
	for _, s := range sessions {
		if strings.Contains(strings.ToLower(s.CardTitle), needle) {
			out = append(out, s)
		}
	}
	return out
}
