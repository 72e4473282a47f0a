package services

import (
	"context"
	"strings"

	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
)

// RoadmapService handles roadmap-step business logic
type RoadmapService interface {
	GetStep(ctx context.Context, id int64) (*models.RoadmapStep, error)
	Steps(ctx context.Context, roadmap string) ([]models.RoadmapStep, error)
	CreateStep(ctx context.Context, step models.RoadmapStep) (*models.RoadmapStep, error)
}

type roadmapService struct {
	steps repository.RoadmapStepRepository
}

// NewRoadmapService creates a new RoadmapService
func NewRoadmapService(steps repository.RoadmapStepRepository) RoadmapService {
	return &roadmapService{steps: steps}
}

func (s *roadmapService) GetStep(ctx context.Context, id int64) (*models.RoadmapStep, error) {
	log := logger.FromContext(ctx)

	step, err := s.steps.Get(ctx, id)
	if err != nil {
		log.Error("failed to get roadmap step: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if step == nil {
		return nil, errors.NewNotFoundError("roadmap step", id)
	}
	return step, nil
}

func (s *roadmapService) Steps(ctx context.Context, roadmap string) ([]models.RoadmapStep, error) {
	log := logger.FromContext(ctx)

	roadmap = strings.ToLower(strings.TrimSpace(roadmap))
	if roadmap == "" {
		return nil, errors.NewValidationError("roadmap", "must not be empty")
	}

	steps, err := s.steps.ListByRoadmap(ctx, roadmap)
	if err != nil {
		log.Error("failed to list roadmap steps: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return steps, nil
}

func (s *roadmapService) CreateStep(ctx context.Context, step models.RoadmapStep) (*models.RoadmapStep, error) {
	log := logger.FromContext(ctx)

	step.Roadmap = strings.ToLower(strings.TrimSpace(step.Roadmap))
	if step.Roadmap == "" {
		return nil, errors.NewValidationError("roadmap", "must not be empty")
	}
	if step.Title == "" {
		return nil, errors.NewValidationError("title", "must not be empty")
	}
	if step.Position < 1 {
		return nil, errors.NewValidationError("position", "must be >= 1")
	}

	id, err := s.steps.Insert(ctx, step)
	if err != nil {
		log.Error("failed to insert roadmap step: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.GetStep(ctx, id)
}
