package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/repositories"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/config"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/jwt"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/password"
)

// AdminService handles staff authentication and admin management
type AdminService struct {
	adminRepo repositories.AdminRepository
	cfg       *config.Config
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo repositories.AdminRepository, cfg *config.Config) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Login authenticates an admin by email and password. Unknown email and
// wrong password surface identically; lastLogin is stamped only on success.
func (s *AdminService) Login(ctx context.Context, email, pass string) (*TokenResponse, *models.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !admin.IsActive {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(pass, admin.Password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	data := map[string]interface{}{"lastLogin": now.Format(time.RFC3339)}
	if updated, err := s.adminRepo.Update(ctx, admin.ID, data); err == nil {
		admin = updated
	} else {
		// A failed stamp does not fail the login
		log.Printf("⚠️ Failed to stamp lastLogin for admin %s: %v", admin.ID, err)
	}

	expiryHours := s.cfg.JWT.AdminTokenHours
	accessToken, err := jwt.GenerateAdminToken(
		admin.ID,
		admin.Email,
		s.cfg.JWT.Secret,
		s.cfg.JWT.Algorithm,
		expiryHours,
	)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("✅ Admin logged in: %s", admin.Email)

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   expiryHours * 3600,
		UserType:    "admin",
	}, admin, nil
}

// ResolveAdmin verifies an admin bearer token and re-confirms the admin
// record is present and active. No session check; admin tokens are revoked
// only by their own expiry.
func (s *AdminService) ResolveAdmin(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := jwt.ValidateAdminToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Principal{
		Kind:  domain.PrincipalAdmin,
		Admin: admin,
		Token: token,
	}, nil
}

// CreateAdminInput is the admin-creation input
type CreateAdminInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Create creates a new admin with a hashed password
func (s *AdminService) Create(ctx context.Context, input *CreateAdminInput) (*models.Admin, error) {
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.Create(ctx, &models.AdminCreate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashed,
		IsActive:  true,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Admin created: %s", admin.Email)
	return admin, nil
}

// List lists all admins
func (s *AdminService) List(ctx context.Context) ([]*models.Admin, error) {
	return s.adminRepo.List(ctx)
}

// Update applies an admin-management update, re-hashing the password when one
// is supplied
func (s *AdminService) Update(ctx context.Context, id string, input *models.AdminUpdate) (*models.Admin, error) {
	data := map[string]interface{}{}
	if input.FirstName != nil {
		data["firstName"] = *input.FirstName
	}
	if input.LastName != nil {
		data["lastName"] = *input.LastName
	}
	if input.Email != nil {
		data["email"] = *input.Email
	}
	if input.IsActive != nil {
		data["isActive"] = *input.IsActive
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		data["password"] = hashed
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}

	return s.adminRepo.Update(ctx, id, data)
}

// Delete removes an admin. The caller can never delete itself.
func (s *AdminService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return domain.ErrSelfDelete
	}
	if _, err := s.adminRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.adminRepo.Delete(ctx, id)
}
