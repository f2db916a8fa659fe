package timer

import (
	"strings"
	"time"

	"github.com/avelkov/focusboard/internal/models"
)

// Store is the in-memory session history: a pure projection of the log lines
// embedded in the vault's documents. It rebuilds itself from scratch whenever
// the card store's revision moves, so a process restart loses nothing; the
// markdown is the durable record.
type Store struct {
	cards    CardStore
	sessions []models.FocusSession
	parsed   bool
	lastRev  uint64
}

// NewStore returns an unparsed store; the first query triggers a rebuild.
func NewStore(cards CardStore) *Store {
	return &Store{cards: cards}
}

func (s *Store) ensureFresh() {
	if s.parsed && s.cards.Revision() == s.lastRev {
		return
	}
	s.rebuild()
}

// rebuild clears the cache and reparses every card body in every document.
// Malformed lines are skipped; lines duplicating an already-seen
// (start, cardID) pair are skipped, which makes reparsing idempotent.
func (s *Store) rebuild() {
	rev := s.cards.Revision()
	s.sessions = s.sessions[:0]
	seen := make(map[string]struct{})
	for _, b := range s.cards.Documents() {
		for _, l := range b.Lists {
			for _, c := range l.Cards {
				lines := strings.Split(c.Body, "\n")
				if len(lines) < 2 {
					continue
				}
				// The first body line is the card title.
				for _, line := range lines[1:] {
					sess, ok := ParseLogLine(line, c.ID, c.Title)
					if !ok {
						continue
					}
					key := sess.Start.Format(time.RFC3339) + "|" + c.ID
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					s.sessions = append(s.sessions, sess)
				}
			}
		}
	}
	s.parsed = true
	s.lastRev = rev
}

// Append records a newly finalized session without waiting for a reparse.
// The next revision-triggered rebuild recovers the same session from its
// document line (or drops it, if the document write never landed).
func (s *Store) Append(sess models.FocusSession) {
	s.ensureFresh()
	s.sessions = append(s.sessions, sess)
}

// All returns the full history in document order.
func (s *Store) All() []models.FocusSession {
	s.ensureFresh()
	out := make([]models.FocusSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// GetLogsForDate returns sessions whose start falls on the given local day.
func (s *Store) GetLogsForDate(date time.Time) []models.FocusSession {
	s.ensureFresh()
	y, m, d := date.Date()
	var out []models.FocusSession
	for _, sess := range s.sessions {
		sy, sm, sd := sess.Start.Date()
		if sy == y && sm == m && sd == d {
			out = append(out, sess)
		}
	}
	return out
}

// TotalFocused returns the summed duration of focus sessions for a card.
// Break entries written by other tools are excluded.
func (s *Store) TotalFocused(cardID string) time.Duration {
	s.ensureFresh()
	var total time.Duration
	for _, sess := range s.sessions {
		if sess.CardID == cardID && sess.Mode != models.ModeBreak {
			total += sess.Duration
		}
	}
	return total
}

// ForceReparse discards the cache and rebuilds from the documents.
func (s *Store) ForceReparse() {
	s.rebuild()
}
