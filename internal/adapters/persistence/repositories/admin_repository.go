package repositories

import (
	"context"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
)

// adminRepository implements AdminRepository over the record store
type adminRepository struct {
	store *datastore.Client
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(store *datastore.Client) AdminRepository {
	return &adminRepository{store: store}
}

// List fetches the admin collection (small, capped page)
func (r *adminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	var admins []*models.Admin
	if err := r.store.FindMany(ctx, "Admin", 0, datastore.AdminPageSize, "", &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// GetByID gets an admin by id
func (r *adminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	admins, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByEmail gets an admin by email (case-sensitive match)
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admins, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create creates a new admin record (password already hashed by the service)
func (r *adminRepository) Create(ctx context.Context, input *models.AdminCreate) (*models.Admin, error) {
	var admin models.Admin
	if err := r.store.Create(ctx, "Admin", input, "", &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Update applies the given fields to an admin record
func (r *adminRepository) Update(ctx context.Context, id string, data map[string]interface{}) (*models.Admin, error) {
	var admin models.Admin
	where := map[string]interface{}{"id": id}
	if err := r.store.Update(ctx, "Admin", where, data, "", &admin); err != nil {
		if err == datastore.ErrNoMatch {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// Delete removes an admin record
func (r *adminRepository) Delete(ctx context.Context, id string) error {
	where := map[string]interface{}{"id": id}
	return r.store.Delete(ctx, "Admin", where, "")
}
