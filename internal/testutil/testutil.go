package testutil

import (
	"time"

	"flashcards/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestCards creates a card set from word/definition pairs
func NewTestCards(pairs ...string) domain.CardSet {
	entries := make([]domain.CardEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, domain.CardEntry{Word: pairs[i], Definition: pairs[i+1]})
	}
	return domain.NewCardSet(entries)
}

// RecordingRenderer keeps the last value of every render call
type RecordingRenderer struct {
	Word              string
	Definition        string
	DefinitionVisible bool
	Label             string
	Calls             int
	Flushes           int
	FlushErr          error
}

func (r *RecordingRenderer) RenderWord(text string) {
	r.Word = text
	r.Calls++
}

func (r *RecordingRenderer) RenderDefinition(text string, visible bool) {
	r.Definition = text
	r.DefinitionVisible = visible
	r.Calls++
}

func (r *RecordingRenderer) RenderActionLabel(text string) {
	r.Label = text
	r.Calls++
}

func (r *RecordingRenderer) Flush() error {
	r.Flushes++
	return r.FlushErr
}
