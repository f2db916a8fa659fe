// Package timer implements the focus timer engine: a single-session state
// machine driven by a one-second tick, a duration resolver layering board
// overrides over global settings, and a session log store that reconstructs
// its history from log lines embedded in the board documents.
package timer

import "github.com/avelkov/focusboard/internal/models"

// CardStore is the narrow view of the document tree the engine needs: it can
// enumerate boards, locate a card anywhere in the vault, and request an
// append-and-persist of a card body. The concrete markdown walk lives in
// internal/board.
type CardStore interface {
	// Documents returns all known boards.
	Documents() []models.Board

	// Revision moves whenever the set or content of documents changes.
	// The session log store rebuilds when it observes a new revision.
	Revision() uint64

	// FindCard returns the first card with the given id. Card ids are
	// globally unique, so the search stops at the first match.
	FindCard(id string) (models.Card, bool)

	// UpdateCardBody replaces the raw body of the card and persists the
	// owning document.
	UpdateCardBody(id, body string) error
}

// SettingsSource resolves raw setting values for the duration resolver and
// the sinks. Board overrides are scoped by the card's owning board.
type SettingsSource interface {
	// BoardSetting returns the per-board override for a key, if any.
	BoardSetting(cardID, key string) (string, bool)

	// GlobalSetting returns the global value for a key, if any.
	GlobalSetting(key string) (string, bool)
}

// Notifier surfaces short fire-and-forget messages to the user.
type Notifier interface {
	Notify(message string)
}

// SoundPlayer plays the end-of-session cue. soundFile is the configured
// custom cue, empty for the sink's default; volume is a 0-100 percentage and
// zero mutes.
type SoundPlayer interface {
	PlayEndSound(soundFile string, volume int)
}
