package services

import (
	"context"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/repositories"
)

// UserService handles citizen profile reads and updates
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID gets a user by id
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile updates the caller's own profile. The caller's bearer token
// is threaded through to the store.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input *models.UserProfileUpdate, bearer string) (*models.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, input, bearer)
}

// List lists users with paging (admin surface)
func (s *UserService) List(ctx context.Context, skip, take int) ([]*models.User, error) {
	return s.userRepo.List(ctx, skip, take)
}

// Update applies an admin-driven profile update to any user
func (s *UserService) Update(ctx context.Context, userID string, input *models.UserProfileUpdate) (*models.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, input, "")
}

// Deactivate soft-deletes a user; records are never hard-deleted
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	return s.userRepo.Deactivate(ctx, userID)
}
