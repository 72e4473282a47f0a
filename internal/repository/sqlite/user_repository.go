package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, created_at FROM users WHERE id = ?
`, id).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: username=%s", username)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (username) VALUES (?)
ON CONFLICT (username) DO NOTHING
`, username)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, `
SELECT id, username, created_at FROM users WHERE username = ?
`, username).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		log.Error("failed to load user after upsert: %v", err)
		return nil, err
	}
	return &u, nil
}
