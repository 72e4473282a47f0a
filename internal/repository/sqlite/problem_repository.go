package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
)

type problemRepository struct {
	db *sql.DB
}

// NewProblemRepository creates a new ProblemRepository implementation
func NewProblemRepository(db *sql.DB) repository.ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) Get(ctx context.Context, id int64) (*models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("getting problem: id=%d", id)

	var p models.Problem
	err := r.db.QueryRowContext(ctx, `
SELECT id, slug, title, difficulty, topic, description, created_at
FROM problems
WHERE id = ?
`, id).Scan(&p.ID, &p.Slug, &p.Title, &p.Difficulty, &p.Topic, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("problem not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get problem: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *problemRepository) List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("listing problems: difficulty=%s, topic=%s", filter.Difficulty, filter.Topic)

	query := sqlBuilder.
		Select("id", "slug", "title", "difficulty", "topic", "description", "created_at").
		From("problems")
	query = applyProblemFilter(query, filter)
	query = query.OrderBy("id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list problems: %v", err)
		return nil, err
	}
	defer rows.Close()

	var problems []models.Problem
	for rows.Next() {
		var p models.Problem
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Difficulty, &p.Topic, &p.Description, &p.CreatedAt); err != nil {
			log.Error("failed to scan problem row: %v", err)
			return nil, err
		}
		problems = append(problems, p)
	}
	log.Debug("found %d problems", len(problems))
	return problems, rows.Err()
}

func (r *problemRepository) Count(ctx context.Context, filter models.ProblemFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")

	query := sqlBuilder.Select("COUNT(*)").From("problems")
	query = applyProblemFilter(query, filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count problems: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *problemRepository) Insert(ctx context.Context, p models.Problem) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("inserting problem: slug=%s", p.Slug)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO problems (slug, title, difficulty, topic, description)
VALUES (?, ?, ?, ?, ?)
`, p.Slug, p.Title, p.Difficulty, p.Topic, p.Description)
	if err != nil {
		log.Error("failed to insert problem: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get problem id: %v", err)
		return 0, err
	}
	log.Debug("problem inserted: id=%d", id)
	return id, nil
}

func applyProblemFilter(query squirrel.SelectBuilder, filter models.ProblemFilter) squirrel.SelectBuilder {
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"topic": filter.Topic})
	}
	return query
}
