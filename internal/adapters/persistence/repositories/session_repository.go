package repositories

import (
	"context"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
)

// sessionRepository implements SessionRepository over the record store
type sessionRepository struct {
	store *datastore.Client
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(store *datastore.Client) SessionRepository {
	return &sessionRepository{store: store}
}

// Create creates a new session record
func (r *sessionRepository) Create(ctx context.Context, input *models.SessionCreate) (*models.Session, error) {
	var session models.Session
	if err := r.store.Create(ctx, "Session", input, "", &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetActiveByUserID returns any active, unexpired session for the user
func (r *sessionRepository) GetActiveByUserID(ctx context.Context, userID string) (*models.Session, error) {
	sessions, err := r.pageByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.IsActive && !s.IsExpired() {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

// InvalidateByUser deactivates every active session for the user, one update
// per row (the store has no updateMany), and returns the count
func (r *sessionRepository) InvalidateByUser(ctx context.Context, userID string) (int, error) {
	sessions, err := r.pageByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, s := range sessions {
		if !s.IsActive {
			continue
		}
		where := map[string]interface{}{"id": s.ID}
		data := map[string]interface{}{"isActive": false}
		if err := r.store.Update(ctx, "Session", where, data, "", nil); err != nil {
			if err == datastore.ErrNoMatch {
				continue
			}
			return count, err
		}
		count++
	}
	return count, nil
}

// DeleteExpired bulk-deletes sessions whose expiry has passed
func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	where := map[string]interface{}{
		"expiresAt": map[string]interface{}{"lt": before.UTC().Format(time.RFC3339)},
	}
	return r.store.DeleteMany(ctx, "Session", where, "")
}

// pageByUser fetches a page and filters sessions for the user client-side
func (r *sessionRepository) pageByUser(ctx context.Context, userID string) ([]*models.Session, error) {
	var sessions []*models.Session
	if err := r.store.FindMany(ctx, "Session", 0, datastore.DefaultPageSize, "", &sessions); err != nil {
		return nil, err
	}
	var matched []*models.Session
	for _, s := range sessions {
		if s.UserID == userID {
			matched = append(matched, s)
		}
	}
	return matched, nil
}
