package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/config"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
)

// In-memory repository fakes mirroring the repository contracts.

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			Algorithm:        "HS256",
			CitizenTokenDays: 7,
			AdminTokenHours:  8,
		},
		OTP: config.OTPConfig{
			Length:        6,
			ExpiryMinutes: 1,
		},
	}
}

type fakeSMS struct {
	sent []string // "phone|message"
	err  error
}

func (f *fakeSMS) Send(_ context.Context, phone, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone+"|"+message)
	return nil
}

type fakeOTPRepo struct {
	rows        []*models.OTP
	nextID      int
	failAll     error
	markUsedErr error
}

func (f *fakeOTPRepo) Create(_ context.Context, input *models.OTPCreate) (*models.OTP, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	f.nextID++
	otp := &models.OTP{
		ID:          fmt.Sprintf("otp-%d", f.nextID),
		PhoneNumber: input.PhoneNumber,
		OTP:         input.OTP,
		ExpiresAt:   input.ExpiresAt,
		IsUsed:      input.IsUsed,
		CreatedAt:   time.Now().Add(time.Duration(f.nextID) * time.Millisecond),
	}
	f.rows = append(f.rows, otp)
	return otp, nil
}

func (f *fakeOTPRepo) LatestByPhone(_ context.Context, phone string) (*models.OTP, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var rows []*models.OTP
	for _, o := range f.rows {
		if o.PhoneNumber == phone {
			rows = append(rows, o)
		}
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	for _, o := range rows {
		if !o.IsUsed {
			return o, nil
		}
	}
	return rows[0], nil
}

func (f *fakeOTPRepo) MarkUsed(_ context.Context, id string) error {
	if f.failAll != nil {
		return f.failAll
	}
	if f.markUsedErr != nil {
		return f.markUsedErr
	}
	for _, o := range f.rows {
		if o.ID == id {
			if o.IsUsed {
				return datastore.ErrNoMatch
			}
			o.IsUsed = true
			return nil
		}
	}
	return datastore.ErrNoMatch
}

func (f *fakeOTPRepo) DeleteExpired(_ context.Context, before time.Time) error {
	if f.failAll != nil {
		return f.failAll
	}
	var kept []*models.OTP
	for _, o := range f.rows {
		if !o.ExpiresAt.Before(before) {
			kept = append(kept, o)
		}
	}
	f.rows = kept
	return nil
}

type fakeUserRepo struct {
	users  []*models.User
	nextID int
	fail   error
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, input *models.UserCreate) (*models.User, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.nextID++
	user := &models.User{
		ID:          fmt.Sprintf("user-%d", f.nextID),
		PhoneNumber: input.PhoneNumber,
		VoterID:     input.VoterID,
		IsActive:    input.IsActive,
		CreatedAt:   time.Now(),
	}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, input *models.UserProfileUpdate, _ string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			if input.FirstName != nil {
				u.FirstName = *input.FirstName
			}
			if input.LastName != nil {
				u.LastName = *input.LastName
			}
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context, skip, take int) ([]*models.User, error) {
	if skip >= len(f.users) {
		return nil, nil
	}
	end := skip + take
	if end > len(f.users) {
		end = len(f.users)
	}
	return f.users[skip:end], nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.IsActive = false
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSessionRepo struct {
	sessions []*models.Session
	nextID   int
	fail     error
}

func (f *fakeSessionRepo) Create(_ context.Context, input *models.SessionCreate) (*models.Session, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.nextID++
	session := &models.Session{
		ID:          fmt.Sprintf("session-%d", f.nextID),
		UserID:      input.UserID,
		PhoneNumber: input.PhoneNumber,
		ExpiresAt:   input.ExpiresAt,
		IsActive:    input.IsActive,
		CreatedAt:   time.Now(),
	}
	f.sessions = append(f.sessions, session)
	return session, nil
}

func (f *fakeSessionRepo) GetActiveByUserID(_ context.Context, userID string) (*models.Session, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive && !s.IsExpired() {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) InvalidateByUser(_ context.Context, userID string) (int, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	count := 0
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive {
			s.IsActive = false
			count++
		}
	}
	return count, nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context, before time.Time) error {
	var kept []*models.Session
	for _, s := range f.sessions {
		if !s.ExpiresAt.Before(before) {
			kept = append(kept, s)
		}
	}
	f.sessions = kept
	return nil
}

type fakeVoterRepo struct {
	voters map[string]bool // code -> isActive
	fail   error
}

func (f *fakeVoterRepo) GetByCode(_ context.Context, code string) (*models.VoterID, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	active, ok := f.voters[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &models.VoterID{ID: "voter-" + code, VoterID: code, IsActive: active}, nil
}

type fakeAdminRepo struct {
	admins []*models.Admin
	nextID int
	fail   error
}

func (f *fakeAdminRepo) List(_ context.Context) ([]*models.Admin, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.admins, nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id string) (*models.Admin, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	for _, a := range f.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminRepo) Create(_ context.Context, input *models.AdminCreate) (*models.Admin, error) {
	f.nextID++
	admin := &models.Admin{
		ID:        fmt.Sprintf("admin-%d", f.nextID),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		IsActive:  input.IsActive,
		CreatedAt: time.Now(),
	}
	f.admins = append(f.admins, admin)
	return admin, nil
}

func (f *fakeAdminRepo) Update(_ context.Context, id string, data map[string]interface{}) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			if v, ok := data["firstName"].(string); ok {
				a.FirstName = v
			}
			if v, ok := data["lastName"].(string); ok {
				a.LastName = v
			}
			if v, ok := data["email"].(string); ok {
				a.Email = v
			}
			if v, ok := data["password"].(string); ok {
				a.Password = v
			}
			if v, ok := data["isActive"].(bool); ok {
				a.IsActive = v
			}
			if v, ok := data["lastLogin"].(string); ok {
				if t, err := time.Parse(time.RFC3339, v); err == nil {
					a.LastLogin = &t
				}
			}
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminRepo) Delete(_ context.Context, id string) error {
	for i, a := range f.admins {
		if a.ID == id {
			f.admins = append(f.admins[:i], f.admins[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
