package services

import (
	"context"
	"strings"

	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
)

// UserService handles user business logic
type UserService interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Register(ctx context.Context, username string) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}

	user, err := s.users.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to register user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}
