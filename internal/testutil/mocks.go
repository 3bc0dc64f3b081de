package testutil

import (
	"context"

	"flashcards/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockCardRepository is a mock for CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) ListCards(ctx context.Context) ([]domain.CardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CardEntry), args.Error(1)
}

// MockProbeRepository is a mock for ProbeRepository
type MockProbeRepository struct {
	mock.Mock
}

func (m *MockProbeRepository) TableExists(ctx context.Context, table string) (bool, error) {
	args := m.Called(ctx, table)
	return args.Bool(0), args.Error(1)
}

func (m *MockProbeRepository) CountRows(ctx context.Context, table string) (int, error) {
	args := m.Called(ctx, table)
	return args.Int(0), args.Error(1)
}

// MockCardSource is a mock for navigator.Source
type MockCardSource struct {
	mock.Mock
}

func (m *MockCardSource) LoadCards(ctx context.Context) (domain.CardSet, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CardSet), args.Error(1)
}
