package models

import "time"

// TimerMode enumerates the session categories tracked by the timer.
type TimerMode string

const (
	ModeStopwatch TimerMode = "stopwatch"
	ModePomodoro  TimerMode = "pomodoro"
	ModeBreak     TimerMode = "break"
)

// Card is a single board item. Body holds the raw text of the card: the
// first line is the title, and any further lines are notes or appended
// session log lines.
type Card struct {
	ID    string
	Title string
	Done  bool
	Body  string
}

// List is a named column of cards.
type List struct {
	Title string
	Cards []Card
}

// Board is one markdown document: frontmatter settings plus lists of cards.
type Board struct {
	Path     string
	Title    string
	Settings map[string]string
	Lists    []List
}

// FindCard returns the first card on the board with the given id.
func (b Board) FindCard(id string) (Card, bool) {
	for _, l := range b.Lists {
		for _, c := range l.Cards {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Card{}, false
}

// FocusSession is one committed interval of tracked time. Sessions are
// append-only: they are created by the finalizer, never mutated or deleted.
type FocusSession struct {
	CardID    string
	CardTitle string // snapshot at commit time, may go stale
	Mode      TimerMode
	Start     time.Time
	End       time.Time
	Duration  time.Duration
}
