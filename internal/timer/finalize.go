package timer

import (
	"errors"
	"fmt"

	"github.com/avelkov/focusboard/internal/models"
)

// ErrCardNotFound reports a finalize against a card that no longer exists in
// any document. The in-memory entry is still recorded; only the document
// write is dropped.
var ErrCardNotFound = errors.New("card not found")

// Finalizer commits completed sessions: it appends to the in-memory store,
// formats the log line, appends it to the owning card's body and requests the
// document be persisted. This is the only path that mutates durable storage.
type Finalizer struct {
	cards  CardStore
	store  *Store
	events *emitter
}

// NewFinalizer wires a finalizer to its card store and session store.
func NewFinalizer(cards CardStore, store *Store, events *emitter) *Finalizer {
	return &Finalizer{cards: cards, store: store, events: events}
}

// Finalize records the session and appends its log line to the owning card.
// The in-memory entry is created even when the card has vanished; in that
// case Finalize returns ErrCardNotFound and the caller decides how to
// surface it. EventLog fires only after a document write has been issued.
func (f *Finalizer) Finalize(sess models.FocusSession, reason string) error {
	f.store.Append(sess)

	card, ok := f.cards.FindCard(sess.CardID)
	if !ok {
		return fmt.Errorf("finalize session: %w: %s", ErrCardNotFound, sess.CardID)
	}

	line := FormatLogLine(sess, reason)
	body := card.Body
	if body == "" {
		body = card.Title
	}
	if err := f.cards.UpdateCardBody(card.ID, body+"\n"+line); err != nil {
		return fmt.Errorf("append session log: %w", err)
	}
	f.events.emit(EventLog)
	return nil
}
