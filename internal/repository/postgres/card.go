package postgres

import (
	"context"

	"flashcards/internal/domain"

	"github.com/jmoiron/sqlx"
)

// CardRepo implements repository.CardRepository.
// The query is plain SQL, so the terminal drill also runs it against SQLite.
type CardRepo struct {
	db *sqlx.DB
}

// NewCardRepo creates a new card repository
func NewCardRepo(db *sqlx.DB) *CardRepo {
	return &CardRepo{db: db}
}

// ListCards returns all cards in insertion order
func (r *CardRepo) ListCards(ctx context.Context) ([]domain.CardEntry, error) {
	query := `
		SELECT word, definition
		FROM terms
		ORDER BY id
	`

	var cards []domain.CardEntry
	if err := r.db.SelectContext(ctx, &cards, query); err != nil {
		return nil, err
	}

	return cards, nil
}
