package service

import (
	"context"
	"fmt"
	"strings"

	"flashcards/internal/domain"
	"flashcards/internal/repository"

	"go.uber.org/zap"
)

// CardService loads card sets for navigator sessions
type CardService struct {
	cardRepo repository.CardRepository
	logger   *zap.Logger
}

// NewCardService creates a new card service
func NewCardService(cardRepo repository.CardRepository, logger *zap.Logger) *CardService {
	return &CardService{
		cardRepo: cardRepo,
		logger:   logger,
	}
}

// LoadCards reads all cards, skipping rows without a word
func (s *CardService) LoadCards(ctx context.Context) (domain.CardSet, error) {
	rows, err := s.cardRepo.ListCards(ctx)
	if err != nil {
		return domain.CardSet{}, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]domain.CardEntry, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Word) == "" {
			continue
		}
		cards = append(cards, row)
	}

	if skipped := len(rows) - len(cards); skipped > 0 {
		s.logger.Warn("Skipped cards without a word", zap.Int("skipped", skipped))
	}

	return domain.NewCardSet(cards), nil
}
