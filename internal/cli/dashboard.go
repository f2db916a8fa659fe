package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelkov/focusboard/internal/board"
	"github.com/avelkov/focusboard/internal/timer"
	"github.com/avelkov/focusboard/internal/tui"
	"github.com/avelkov/focusboard/internal/util"
)

// runDashboard opens the vault and hands control to the interactive
// dashboard until the user quits.
func runDashboard(args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	dir, err := resolveVault(db, args)
	if err != nil {
		return err
	}
	if err := board.EnsureVault(dir); err != nil {
		return fmt.Errorf("prepare vault: %w", err)
	}
	vault, err := board.Open(dir)
	if err != nil {
		return err
	}
	util.LogError("remember vault", db.TouchVault(dir))

	status := &tui.StatusSink{}
	settings := board.Settings{Vault: vault, Global: db}
	manager := timer.NewManager(vault, settings, timer.SystemClock(), status, tui.Bell{Out: os.Stderr})

	stopWatch, err := vault.Watch()
	if err != nil {
		// External-edit detection is a convenience; the dashboard still
		// works without it.
		util.LogError("watch vault", err)
	} else {
		defer stopWatch()
	}

	program := tea.NewProgram(tui.NewDashboardModel(vault, manager, status), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
