package mocks

import (
	"context"

	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) CreateIfAbsent(ctx context.Context, card models.ReviewCard) (*models.ReviewCard, bool, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.ReviewCard), args.Bool(1), args.Error(2)
}

func (m *MockCardRepository) Get(ctx context.Context, id, userID int64) (*models.ReviewCard, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewCard), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card models.ReviewCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) ListDue(ctx context.Context, userID int64, today models.Date, limit int) ([]models.ReviewCard, error) {
	args := m.Called(ctx, userID, today, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewCard), args.Error(1)
}

func (m *MockCardRepository) Stats(ctx context.Context, userID int64, today models.Date) (*models.ReviewStats, error) {
	args := m.Called(ctx, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewStats), args.Error(1)
}
