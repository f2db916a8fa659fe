package testutil

import (
	"time"

	"github.com/avelkov/focusboard/internal/models"
)

// CardBuilder provides fluent API for creating test cards.
type CardBuilder struct {
	card models.Card
}

func NewCard(id string) *CardBuilder {
	return &CardBuilder{
		card: models.Card{
			ID:    id,
			Title: "Test Card",
			Body:  "Test Card",
		},
	}
}

func (b *CardBuilder) WithTitle(t string) *CardBuilder {
	b.card.Title = t
	b.card.Body = t
	return b
}

func (b *CardBuilder) WithDone(done bool) *CardBuilder {
	b.card.Done = done
	return b
}

// WithLogLines appends raw log lines below the title line.
func (b *CardBuilder) WithLogLines(lines ...string) *CardBuilder {
	body := b.card.Body
	for _, l := range lines {
		body += "\n" + l
	}
	b.card.Body = body
	return b
}

func (b *CardBuilder) Build() models.Card {
	return b.card
}

// BoardBuilder provides fluent API for creating test boards.
type BoardBuilder struct {
	board models.Board
}

func NewBoard(title string) *BoardBuilder {
	return &BoardBuilder{
		board: models.Board{
			Title:    title,
			Settings: map[string]string{},
		},
	}
}

func (b *BoardBuilder) WithSetting(key, value string) *BoardBuilder {
	b.board.Settings[key] = value
	return b
}

func (b *BoardBuilder) WithList(title string, cards ...models.Card) *BoardBuilder {
	b.board.Lists = append(b.board.Lists, models.List{Title: title, Cards: cards})
	return b
}

func (b *BoardBuilder) Build() models.Board {
	return b.board
}

// SessionBuilder provides fluent API for creating test sessions.
type SessionBuilder struct {
	session models.FocusSession
}

func NewSession(cardID string) *SessionBuilder {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	return &SessionBuilder{
		session: models.FocusSession{
			CardID:    cardID,
			CardTitle: "Test Card",
			Mode:      models.ModePomodoro,
			Start:     start,
			End:       start.Add(25 * time.Minute),
			Duration:  25 * time.Minute,
		},
	}
}

func (b *SessionBuilder) WithTitle(t string) *SessionBuilder {
	b.session.CardTitle = t
	return b
}

func (b *SessionBuilder) WithMode(m models.TimerMode) *SessionBuilder {
	b.session.Mode = m
	return b
}

func (b *SessionBuilder) WithSpan(start time.Time, d time.Duration) *SessionBuilder {
	b.session.Start = start
	b.session.End = start.Add(d)
	b.session.Duration = d
	return b
}

func (b *SessionBuilder) Build() models.FocusSession {
	return b.session
}
