package services

import (
	"context"
	"time"

	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
	"github.com/prepdeck/prepdeck/internal/srs"
)

// ReviewService drives the spaced-repetition lifecycle for one item kind.
// Two instances exist in the server, one per card table; the SM-2 logic
// itself lives in the srs package and is shared.
type ReviewService interface {
	// RegisterCompletion idempotently creates the review card for a
	// completed item. Safe to call repeatedly.
	RegisterCompletion(ctx context.Context, userID, itemID int64) (*models.ReviewCard, error)
	DueCards(ctx context.Context, userID int64, limit int) ([]models.ReviewCard, error)
	Review(ctx context.Context, cardID, userID int64, quality int) (*models.ReviewCard, error)
	Stats(ctx context.Context, userID int64) (*models.ReviewStats, error)
}

type reviewService struct {
	cards repository.CardRepository
	kind  string
	now   func() time.Time
}

// ReviewOption configures a ReviewService.
type ReviewOption func(*reviewService)

// WithNow overrides the service clock, for tests.
func WithNow(now func() time.Time) ReviewOption {
	return func(s *reviewService) { s.now = now }
}

// NewReviewService creates a ReviewService over the given card repository.
// kind names the item kind ("problem", "roadmap_step") in errors and logs.
func NewReviewService(cards repository.CardRepository, kind string, opts ...ReviewOption) ReviewService {
	s := &reviewService{cards: cards, kind: kind, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reviewService) RegisterCompletion(ctx context.Context, userID, itemID int64) (*models.ReviewCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering %s completion: user_id=%d, item_id=%d", s.kind, userID, itemID)

	card, created, err := s.cards.CreateIfAbsent(ctx, srs.NewCard(userID, itemID, s.now()))
	if err != nil {
		log.Error("failed to create review card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if created {
		log.Info("review card created: kind=%s, card_id=%d", s.kind, card.ID)
	}
	return card, nil
}

func (s *reviewService) DueCards(ctx context.Context, userID int64, limit int) ([]models.ReviewCard, error) {
	log := logger.FromContext(ctx)

	today := models.DateOf(s.now())
	cards, err := s.cards.ListDue(ctx, userID, today, limit)
	if err != nil {
		log.Error("failed to list due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *reviewService) Review(ctx context.Context, cardID, userID int64, quality int) (*models.ReviewCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing %s card: card_id=%d, quality=%d", s.kind, cardID, quality)

	card, err := s.cards.Get(ctx, cardID, userID)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		// Covers both a nonexistent card and another user's card; the
		// repository lookup is keyed by (id, user).
		return nil, errors.NewNotFoundError("review card", cardID)
	}

	updated := srs.Review(*card, quality, s.now())
	updated.ID = card.ID

	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", updated.IntervalDays, updated.EaseFactor)

	if err := s.cards.Update(ctx, updated); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &updated, nil
}

func (s *reviewService) Stats(ctx context.Context, userID int64) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx)

	stats, err := s.cards.Stats(ctx, userID, models.DateOf(s.now()))
	if err != nil {
		log.Error("failed to get review stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
