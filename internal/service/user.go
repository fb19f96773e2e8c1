package service

import (
	"context"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

// UserRepository defines the persistence operations required by the user
// service.
type UserRepository interface {
	// GetUserByID fetches a user's public fields by id.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// GetUserByEmail fetches a user's public fields by email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserService implements user lookups by delegating to a UserRepository.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a new UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetByEmail returns the user with the given email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}
