package repository

import (
	"context"

	"github.com/prepdeck/prepdeck/internal/models"
)

// CardRepository handles review-card data access for one item kind. The
// problem and roadmap-step card tables share one implementation parameterized
// by table name, so both kinds get identical semantics.
type CardRepository interface {
	// CreateIfAbsent inserts the card unless one already exists for its
	// (user, item) pair, and returns the stored card either way. The second
	// return value reports whether a new row was created.
	CreateIfAbsent(ctx context.Context, card models.ReviewCard) (*models.ReviewCard, bool, error)
	// Get returns the card with the given id belonging to userID, or nil
	// when no such card exists for that user.
	Get(ctx context.Context, id, userID int64) (*models.ReviewCard, error)
	Update(ctx context.Context, card models.ReviewCard) error
	// ListDue returns the user's cards with next_review_date <= today,
	// most overdue first.
	ListDue(ctx context.Context, userID int64, today models.Date, limit int) ([]models.ReviewCard, error)
	Stats(ctx context.Context, userID int64, today models.Date) (*models.ReviewStats, error)
}

// UserRepository handles user data access.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Upsert(ctx context.Context, username string) (*models.User, error)
}

// ProblemRepository handles coding-problem data access.
type ProblemRepository interface {
	Get(ctx context.Context, id int64) (*models.Problem, error)
	List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error)
	Count(ctx context.Context, filter models.ProblemFilter) (int, error)
	Insert(ctx context.Context, problem models.Problem) (int64, error)
}

// RoadmapStepRepository handles roadmap-step data access.
type RoadmapStepRepository interface {
	Get(ctx context.Context, id int64) (*models.RoadmapStep, error)
	ListByRoadmap(ctx context.Context, roadmap string) ([]models.RoadmapStep, error)
	Insert(ctx context.Context, step models.RoadmapStep) (int64, error)
}
