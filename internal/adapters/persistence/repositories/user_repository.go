package repositories

import (
	"context"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
)

// userRepository implements UserRepository over the record store
type userRepository struct {
	store *datastore.Client
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *datastore.Client) UserRepository {
	return &userRepository{store: store}
}

// GetByID gets a user by id (page fetch, client-side filter)
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var users []*models.User
	if err := r.store.FindMany(ctx, "User", 0, datastore.DefaultPageSize, "", &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByPhone gets a user by phone number (page fetch, client-side filter)
func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var users []*models.User
	if err := r.store.FindMany(ctx, "User", 0, datastore.DefaultPageSize, "", &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create creates a new user record
func (r *userRepository) Create(ctx context.Context, input *models.UserCreate) (*models.User, error) {
	var user models.User
	if err := r.store.Create(ctx, "User", input, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates a user's profile fields under the caller's bearer
func (r *userRepository) UpdateProfile(ctx context.Context, id string, input *models.UserProfileUpdate, bearer string) (*models.User, error) {
	var user models.User
	where := map[string]interface{}{"id": id}
	if err := r.store.Update(ctx, "User", where, input, bearer, &user); err != nil {
		if err == datastore.ErrNoMatch {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List lists users with skip/take paging
func (r *userRepository) List(ctx context.Context, skip, take int) ([]*models.User, error) {
	if take <= 0 || take > datastore.DefaultPageSize {
		take = datastore.DefaultPageSize
	}
	var users []*models.User
	if err := r.store.FindMany(ctx, "User", skip, take, "", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Deactivate soft-deletes a user (isActive=false; users are never hard-deleted)
func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	where := map[string]interface{}{"id": id}
	data := map[string]interface{}{"isActive": false}
	if err := r.store.Update(ctx, "User", where, data, "", nil); err != nil {
		if err == datastore.ErrNoMatch {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
