package repositories

import (
	"context"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
)

// Repositories wrap the record-store client. The store's native filtering is
// unreliable, so reads fetch a bounded page and filter client-side; each
// interface hides that, so a real server-side filter can replace it later
// without touching callers.

// UserRepository defines citizen record access
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Create(ctx context.Context, input *models.UserCreate) (*models.User, error)
	// UpdateProfile threads the caller's bearer token to the store, which
	// expects per-request authorization on user writes.
	UpdateProfile(ctx context.Context, id string, input *models.UserProfileUpdate, bearer string) (*models.User, error)
	List(ctx context.Context, skip, take int) ([]*models.User, error)
	Deactivate(ctx context.Context, id string) error
}

// OTPRepository defines one-time-passcode record access
type OTPRepository interface {
	Create(ctx context.Context, input *models.OTPCreate) (*models.OTP, error)
	// LatestByPhone returns the most recently created unused row for the
	// phone number; when every row is used, the newest used row is returned
	// so the caller can distinguish "already used" from "not found".
	LatestByPhone(ctx context.Context, phone string) (*models.OTP, error)
	// MarkUsed flips isUsed on the row iff it is still unused (single
	// conditional write). Returns datastore.ErrNoMatch when already used.
	MarkUsed(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, before time.Time) error
}

// SessionRepository defines citizen session record access
type SessionRepository interface {
	Create(ctx context.Context, input *models.SessionCreate) (*models.Session, error)
	GetActiveByUserID(ctx context.Context, userID string) (*models.Session, error)
	// InvalidateByUser deactivates every active session for the user and
	// returns the number invalidated (the store has no updateMany).
	InvalidateByUser(ctx context.Context, userID string) (int, error)
	DeleteExpired(ctx context.Context, before time.Time) error
}

// VoterIDRepository defines read-only electoral-roll access
type VoterIDRepository interface {
	GetByCode(ctx context.Context, code string) (*models.VoterID, error)
}

// AdminRepository defines staff record access
type AdminRepository interface {
	List(ctx context.Context) ([]*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, input *models.AdminCreate) (*models.Admin, error)
	Update(ctx context.Context, id string, data map[string]interface{}) (*models.Admin, error)
	Delete(ctx context.Context, id string) error
}
