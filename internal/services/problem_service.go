package services

import (
	"context"
	"strings"

	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
)

// ProblemService handles coding-problem business logic
type ProblemService interface {
	Get(ctx context.Context, id int64) (*models.Problem, error)
	List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, int, error)
	Create(ctx context.Context, problem models.Problem) (*models.Problem, error)
}

type problemService struct {
	problems repository.ProblemRepository
}

// NewProblemService creates a new ProblemService
func NewProblemService(problems repository.ProblemRepository) ProblemService {
	return &problemService{problems: problems}
}

func (s *problemService) Get(ctx context.Context, id int64) (*models.Problem, error) {
	log := logger.FromContext(ctx)

	problem, err := s.problems.Get(ctx, id)
	if err != nil {
		log.Error("failed to get problem: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if problem == nil {
		return nil, errors.NewNotFoundError("problem", id)
	}
	return problem, nil
}

func (s *problemService) List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, int, error) {
	log := logger.FromContext(ctx)

	problems, err := s.problems.List(ctx, filter)
	if err != nil {
		log.Error("failed to list problems: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.problems.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count problems: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return problems, total, nil
}

func (s *problemService) Create(ctx context.Context, problem models.Problem) (*models.Problem, error) {
	log := logger.FromContext(ctx)

	problem.Slug = strings.ToLower(strings.TrimSpace(problem.Slug))
	if problem.Slug == "" {
		return nil, errors.NewValidationError("slug", "must not be empty")
	}
	if problem.Title == "" {
		return nil, errors.NewValidationError("title", "must not be empty")
	}
	if problem.Difficulty == "" {
		problem.Difficulty = "medium"
	}

	id, err := s.problems.Insert(ctx, problem)
	if err != nil {
		log.Error("failed to insert problem: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, id)
}
