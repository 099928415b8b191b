package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
)

// otpRepository implements OTPRepository over the record store
type otpRepository struct {
	store *datastore.Client
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(store *datastore.Client) OTPRepository {
	return &otpRepository{store: store}
}

// Create creates a new OTP record
func (r *otpRepository) Create(ctx context.Context, input *models.OTPCreate) (*models.OTP, error) {
	var otp models.OTP
	if err := r.store.Create(ctx, "OTP", input, "", &otp); err != nil {
		return nil, err
	}
	return &otp, nil
}

// LatestByPhone returns the newest unused OTP row for the phone number,
// falling back to the newest used row so verification can report "already
// used" instead of "not found". Older concurrent rows are implicitly
// superseded, never invalidated.
func (r *otpRepository) LatestByPhone(ctx context.Context, phone string) (*models.OTP, error) {
	var otps []*models.OTP
	if err := r.store.FindMany(ctx, "OTP", 0, datastore.DefaultPageSize, "", &otps); err != nil {
		return nil, err
	}

	var rows []*models.OTP
	for _, o := range otps {
		if o.PhoneNumber == phone {
			rows = append(rows, o)
		}
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	for _, o := range rows {
		if !o.IsUsed {
			return o, nil
		}
	}
	return rows[0], nil
}

// MarkUsed flips isUsed in a single conditional write. The where clause
// requires isUsed=false so two concurrent verifies cannot both consume the
// same row; the loser gets datastore.ErrNoMatch.
func (r *otpRepository) MarkUsed(ctx context.Context, id string) error {
	where := map[string]interface{}{"id": id, "isUsed": false}
	data := map[string]interface{}{"isUsed": true}
	return r.store.Update(ctx, "OTP", where, data, "", nil)
}

// DeleteExpired bulk-deletes rows whose expiry has passed
func (r *otpRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	where := map[string]interface{}{
		"expiresAt": map[string]interface{}{"lt": before.UTC().Format(time.RFC3339)},
	}
	return r.store.DeleteMany(ctx, "OTP", where, "")
}
