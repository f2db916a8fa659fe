package tui

import (
	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/models"
)

// ViewState tracks cursor focus and scroll positions across the board
// columns.
type ViewState struct {
	focusedColIdx    int
	focusedCardIdx   int
	cardScrollOffset map[int]int
}

func newViewState() ViewState {
	return ViewState{
		focusedColIdx:    config.DefaultFocusColumn,
		cardScrollOffset: make(map[int]int),
	}
}

// StatusSink is the Notifier the engine reports through; the status bar
// renders its last message. It is shared by pointer between the engine and
// the model copies bubbletea makes.
type StatusSink struct {
	Message string
}

// Notify implements timer.Notifier.
func (s *StatusSink) Notify(message string) {
	s.Message = message
}

// columns flattens the vault into the currently displayed lists. Lists from
// all boards are shown side by side; each column remembers its board so
// per-board settings stay visible in the header.
type column struct {
	boardTitle string
	list       models.List
}

func (m DashboardModel) columns() []column {
	var cols []column
	for _, b := range m.vault.Documents() {
		for _, l := range b.Lists {
			cols = append(cols, column{boardTitle: b.Title, list: l})
		}
	}
	return cols
}

// focusedCard returns the card under the cursor.
func (m DashboardModel) focusedCard() (models.Card, bool) {
	cols := m.columns()
	if m.view.focusedColIdx >= len(cols) {
		return models.Card{}, false
	}
	cards := cols[m.view.focusedColIdx].list.Cards
	if m.view.focusedCardIdx >= len(cards) {
		return models.Card{}, false
	}
	return cards[m.view.focusedCardIdx], true
}
