package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
)

type roadmapStepRepository struct {
	db *sql.DB
}

// NewRoadmapStepRepository creates a new RoadmapStepRepository implementation
func NewRoadmapStepRepository(db *sql.DB) repository.RoadmapStepRepository {
	return &roadmapStepRepository{db: db}
}

func (r *roadmapStepRepository) Get(ctx context.Context, id int64) (*models.RoadmapStep, error) {
	log := logger.FromContext(ctx).WithPrefix("roadmap_repo")
	log.Debug("getting roadmap step: id=%d", id)

	var s models.RoadmapStep
	err := r.db.QueryRowContext(ctx, `
SELECT id, roadmap, position, title, description, created_at
FROM roadmap_steps
WHERE id = ?
`, id).Scan(&s.ID, &s.Roadmap, &s.Position, &s.Title, &s.Description, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("roadmap step not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get roadmap step: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *roadmapStepRepository) ListByRoadmap(ctx context.Context, roadmap string) ([]models.RoadmapStep, error) {
	log := logger.FromContext(ctx).WithPrefix("roadmap_repo")
	log.Debug("listing roadmap steps: roadmap=%s", roadmap)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, roadmap, position, title, description, created_at
FROM roadmap_steps
WHERE roadmap = ?
ORDER BY position ASC
`, roadmap)
	if err != nil {
		log.Error("failed to list roadmap steps: %v", err)
		return nil, err
	}
	defer rows.Close()

	var steps []models.RoadmapStep
	for rows.Next() {
		var s models.RoadmapStep
		if err := rows.Scan(&s.ID, &s.Roadmap, &s.Position, &s.Title, &s.Description, &s.CreatedAt); err != nil {
			log.Error("failed to scan roadmap step row: %v", err)
			return nil, err
		}
		steps = append(steps, s)
	}
	log.Debug("found %d roadmap steps", len(steps))
	return steps, rows.Err()
}

func (r *roadmapStepRepository) Insert(ctx context.Context, s models.RoadmapStep) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("roadmap_repo")
	log.Debug("inserting roadmap step: roadmap=%s, position=%d", s.Roadmap, s.Position)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO roadmap_steps (roadmap, position, title, description)
VALUES (?, ?, ?, ?)
`, s.Roadmap, s.Position, s.Title, s.Description)
	if err != nil {
		log.Error("failed to insert roadmap step: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get roadmap step id: %v", err)
		return 0, err
	}
	log.Debug("roadmap step inserted: id=%d", id)
	return id, nil
}
