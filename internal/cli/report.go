package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/report"
	"github.com/avelkov/focusboard/internal/util"
)

var flagReportDate string

var reportCmd = &cobra.Command{
	Use:   "report [vault]",
	Short: "Generate a PDF report for one day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(flagReportDate)
		if err != nil {
			return err
		}
		sessions, err := loadSessions(args)
		if err != nil {
			return err
		}
		sessions = filterByDate(sessions, date)
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions on %s", date.Format("2006-01-02"))
		}

		dir := util.ReportsDir(config.AppName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("focusboard_%s.pdf", date.Format("2006-01-02")))
		if err := report.GeneratePDF(path, date, sessions); err != nil {
			return err
		}
		fmt.Println("Report written to", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&flagReportDate, "date", "", "day to report, YYYY-MM-DD (default today)")
}
