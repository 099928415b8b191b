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
)

// AuthService handles citizen authentication: the OTP challenge flow,
// session lifecycle, and token-based identity resolution
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	voterRepo   repositories.VoterIDRepository
	otpService  *OTPService
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	voterRepo repositories.VoterIDRepository,
	otpService *OTPService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		voterRepo:   voterRepo,
		otpService:  otpService,
		cfg:         cfg,
	}
}

// TokenResponse is the wire payload of a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserType    string `json:"user_type,omitempty"`
}

// IsVoterEligible reports whether a voter-id code exists on the electoral
// roll and is active. Fail-closed: any store failure resolves to false.
func (s *AuthService) IsVoterEligible(ctx context.Context, voterID string) bool {
	record, err := s.voterRepo.GetByCode(ctx, voterID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("⚠️ Voter eligibility lookup failed: %v", err)
		}
		return false
	}
	return record.IsActive
}

// RequestOTP starts the citizen login flow for a phone number.
// An existing user's phone/voter binding is immutable; a new phone number
// must carry an eligible voter id before any OTP row is created.
func (s *AuthService) RequestOTP(ctx context.Context, phoneNumber, voterID string) (*SendResult, error) {
	user, err := s.userRepo.GetByPhone(ctx, phoneNumber)
	switch {
	case err == nil:
		if user.VoterID != voterID {
			return nil, domain.ErrVoterMismatch
		}
	case errors.Is(err, domain.ErrNotFound):
		if !s.IsVoterEligible(ctx, voterID) {
			return nil, domain.ErrVoterIneligible
		}
	default:
		return nil, err
	}

	return s.otpService.Send(ctx, phoneNumber)
}

// VerifyOTP completes the citizen login flow: consumes the code, creates the
// user on first login, appends a fresh session (every login, never
// deduplicated), and mints a citizen token.
func (s *AuthService) VerifyOTP(ctx context.Context, phoneNumber, code, voterID string) (*TokenResponse, error) {
	if err := s.otpService.Verify(ctx, phoneNumber, code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByPhone(ctx, phoneNumber)
	if errors.Is(err, domain.ErrNotFound) {
		// A non-empty voter id is re-checked here; an empty one skips the
		// gate and creates a voter-less user. RequestOTP is the enforcement
		// point for that path.
		if voterID != "" && !s.IsVoterEligible(ctx, voterID) {
			return nil, domain.ErrVoterIneligible
		}
		user, err = s.userRepo.Create(ctx, &models.UserCreate{
			PhoneNumber: phoneNumber,
			VoterID:     voterID,
			IsActive:    true,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("✅ User created for phone %s", phoneNumber)
	} else if err != nil {
		return nil, err
	}

	expiry := time.Duration(s.cfg.JWT.CitizenTokenDays) * 24 * time.Hour
	_, err = s.sessionRepo.Create(ctx, &models.SessionCreate{
		UserID:      user.ID,
		PhoneNumber: user.PhoneNumber,
		ExpiresAt:   time.Now().Add(expiry),
		IsActive:    true,
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := jwt.GenerateCitizenToken(
		user.ID,
		user.PhoneNumber,
		s.cfg.JWT.Secret,
		s.cfg.JWT.Algorithm,
		s.cfg.JWT.CitizenTokenDays,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Citizen logged in: %s", user.PhoneNumber)

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(expiry.Seconds()),
	}, nil
}

// Logout invalidates all active sessions for the user. Tokens hold no
// revocation list; killing the sessions is what revokes them.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	count, err := s.sessionRepo.InvalidateByUser(ctx, userID)
	if err != nil {
		return err
	}
	log.Printf("✅ Invalidated %d session(s) for user %s", count, userID)
	return nil
}

// ResolveCitizen verifies a bearer token and re-confirms the principal
// against the store: the claims must be intact, an active unexpired session
// must exist, and the user must still be active. Read-only; nothing is
// refreshed or extended.
func (s *AuthService) ResolveCitizen(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := jwt.ValidateCitizenToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.sessionRepo.GetActiveByUserID(ctx, claims.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Principal{
		Kind:  domain.PrincipalCitizen,
		User:  user,
		Token: token,
	}, nil
}
