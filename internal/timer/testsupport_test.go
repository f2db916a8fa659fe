package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/avelkov/focusboard/internal/models"
)

// fakeClock drives tick thresholds deterministically.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// memCards is an in-memory CardStore.
type memCards struct {
	boards   []models.Board
	rev      uint64
	writeErr error
}

func newMemCards(boards ...models.Board) *memCards {
	return &memCards{boards: boards, rev: 1}
}

func (m *memCards) Documents() []models.Board { return m.boards }

func (m *memCards) Revision() uint64 { return m.rev }

func (m *memCards) FindCard(id string) (models.Card, bool) {
	for _, b := range m.boards {
		if c, ok := b.FindCard(id); ok {
			return c, true
		}
	}
	return models.Card{}, false
}

func (m *memCards) UpdateCardBody(id, body string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	for bi := range m.boards {
		for li := range m.boards[bi].Lists {
			for ci := range m.boards[bi].Lists[li].Cards {
				card := &m.boards[bi].Lists[li].Cards[ci]
				if card.ID != id {
					continue
				}
				card.Body = body
				card.Title = strings.SplitN(body, "\n", 2)[0]
				m.rev++
				return nil
			}
		}
	}
	return fmt.Errorf("no card %s", id)
}

func (m *memCards) removeCard(id string) {
	for bi := range m.boards {
		for li := range m.boards[bi].Lists {
			cards := m.boards[bi].Lists[li].Cards
			for ci := range cards {
				if cards[ci].ID == id {
					m.boards[bi].Lists[li].Cards = append(cards[:ci], cards[ci+1:]...)
					m.rev++
					return
				}
			}
		}
	}
}

// memSettings applies the board map to every card; the resolver's empty-card
// short circuit is what the tests vary.
type memSettings struct {
	board  map[string]string
	global map[string]string
}

func (s memSettings) BoardSetting(cardID, key string) (string, bool) {
	v, ok := s.board[key]
	return v, ok
}

func (s memSettings) GlobalSetting(key string) (string, bool) {
	v, ok := s.global[key]
	return v, ok
}

// memNotifier records every message.
type memNotifier struct {
	messages []string
}

func (n *memNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func (n *memNotifier) last() string {
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

func (n *memNotifier) contains(substr string) bool {
	for _, m := range n.messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// memSound records end-of-session cues.
type memSound struct {
	volumes []int
	files   []string
}

func (s *memSound) PlayEndSound(soundFile string, volume int) {
	s.files = append(s.files, soundFile)
	s.volumes = append(s.volumes, volume)
}

// singleCardBoard is the common fixture: one board, one list, one card.
func singleCardBoard(cardID, title string) models.Board {
	return models.Board{
		Title: "Work",
		Lists: []models.List{
			{Title: "Doing", Cards: []models.Card{{ID: cardID, Title: title, Body: title}}},
		},
	}
}

// testManager wires a manager over the fixtures and returns the pieces the
// scenarios poke at.
func testManager(settings memSettings, boards ...models.Board) (*Manager, *memCards, *fakeClock, *memNotifier, *memSound) {
	cards := newMemCards(boards...)
	clock := newFakeClock()
	notifier := &memNotifier{}
	sound := &memSound{}
	m := NewManager(cards, settings, clock, notifier, sound)
	return m, cards, clock, notifier, sound
}
