package repositories

import (
	"context"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
)

// voterIDRepository implements VoterIDRepository over the record store.
// VoterId records are provisioned out-of-band and read-only here.
type voterIDRepository struct {
	store *datastore.Client
}

// NewVoterIDRepository creates a new voter-id repository
func NewVoterIDRepository(store *datastore.Client) VoterIDRepository {
	return &voterIDRepository{store: store}
}

// GetByCode gets a voter-id record by its electoral-roll code
func (r *voterIDRepository) GetByCode(ctx context.Context, code string) (*models.VoterID, error) {
	var voterIDs []*models.VoterID
	if err := r.store.FindMany(ctx, "VoterId", 0, datastore.DefaultPageSize, "", &voterIDs); err != nil {
		return nil, err
	}
	for _, v := range voterIDs {
		if v.VoterID == code {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}
