// Package cli wires the commands: the interactive dashboard plus the
// non-interactive log, report and export subcommands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/database"
	"github.com/avelkov/focusboard/internal/report"
	"github.com/avelkov/focusboard/internal/util"
)

// Version is stamped at build time.
var Version = "dev"

var flagVault string

var rootCmd = &cobra.Command{
	Use:   "focusboard [vault]",
	Short: "Markdown board with an embedded focus timer",
	Long: `focusboard opens a directory of markdown board files and runs a
pomodoro and stopwatch timer against their cards. Completed sessions are
written back into the cards as log lines, so the markdown stays the only
source of truth.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(args)
	},
}

var runCmd = &cobra.Command{
	Use:   "run [vault]",
	Short: "Open the interactive dashboard",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVault, "vault", "", "vault directory (defaults to the last opened one)")
	rootCmd.AddCommand(runCmd, logCmd, reportCmd, exportCmd, versionCmd)
}

// Execute runs the CLI.
func Execute() {
	report.AppVersion = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB opens the global settings database under the XDG data dir.
func openDB() (*database.Database, error) {
	dir := util.DataDir(config.AppName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return database.Open(filepath.Join(dir, config.DBFileName))
}

// resolveVault picks the vault directory: the positional argument wins, then
// the --vault flag, then the most recently opened vault, then the working
// directory.
func resolveVault(db *database.Database, args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	if flagVault != "" {
		return filepath.Abs(flagVault)
	}
	if path, ok := db.LastVault(); ok {
		return path, nil
	}
	return os.Getwd()
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
