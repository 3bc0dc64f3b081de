package repository

import (
	"context"

	"flashcards/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	AuthorizeUser(ctx context.Context, userID int64) error
	EnsureUserExists(ctx context.Context, userID int64) error
}

// CardRepository reads the word/definition table
type CardRepository interface {
	ListCards(ctx context.Context) ([]domain.CardEntry, error)
}

// ProbeRepository inspects an unrelated database for diagnostics
type ProbeRepository interface {
	TableExists(ctx context.Context, table string) (bool, error)
	CountRows(ctx context.Context, table string) (int, error)
}
