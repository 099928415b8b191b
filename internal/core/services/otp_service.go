package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/repositories"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/config"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPAlreadyUsed = errors.New("otp already used")
	ErrOTPExpired     = errors.New("otp expired")
	ErrOTPMismatch    = errors.New("invalid otp")
)

// OTPService handles one-time-passcode issuance and verification
type OTPService struct {
	otpRepo repositories.OTPRepository
	sms     SMSSender
	cfg     *config.Config
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo repositories.OTPRepository, sms SMSSender, cfg *config.Config) *OTPService {
	return &OTPService{
		otpRepo: otpRepo,
		sms:     sms,
		cfg:     cfg,
	}
}

// SendResult is the outcome of an OTP send
type SendResult struct {
	ExpiresIn int // seconds
	// EchoedOTP carries the code back to the caller when delivery failed in
	// dev mode. Empty in prod, always.
	EchoedOTP string
}

// Generate creates a random numeric code, leading zeros preserved
func (s *OTPService) Generate() (string, error) {
	length := s.cfg.OTP.Length
	if length <= 0 {
		length = 6
	}
	code := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += fmt.Sprintf("%d", n.Int64())
	}
	return code, nil
}

// Send creates an OTP record and dispatches it over SMS. A delivery failure
// is logged and never surfaced as an error; a store failure is.
func (s *OTPService) Send(ctx context.Context, phoneNumber string) (*SendResult, error) {
	code, err := s.Generate()
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(s.cfg.OTP.ExpiryMinutes) * time.Minute
	_, err = s.otpRepo.Create(ctx, &models.OTPCreate{
		PhoneNumber: phoneNumber,
		OTP:         code,
		ExpiresAt:   time.Now().Add(expiry),
		IsUsed:      false,
	})
	if err != nil {
		return nil, err
	}

	result := &SendResult{ExpiresIn: int(expiry.Seconds())}

	message := fmt.Sprintf(
		"Your OTP for Bolisetti App is: %s. Valid for %d minute(s). Do not share this code with anyone.",
		code, s.cfg.OTP.ExpiryMinutes,
	)
	if err := s.sms.Send(ctx, phoneNumber, message); err != nil {
		log.Printf("⚠️ SMS delivery failed for %s: %v", phoneNumber, err)
		if s.cfg.IsDev() {
			result.EchoedOTP = code
		}
	}

	return result, nil
}

// Verify checks the supplied code against the most recently created unused
// row for the phone number and consumes it. Consumption is a single
// conditional write, so a second verify of the same code fails with
// ErrOTPAlreadyUsed even under concurrent calls.
func (s *OTPService) Verify(ctx context.Context, phoneNumber, code string) error {
	otp, err := s.otpRepo.LatestByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrOTPNotFound
		}
		return err
	}

	if otp.IsUsed {
		return ErrOTPAlreadyUsed
	}
	// Valid at exactly expiresAt, expired strictly after
	if time.Now().After(otp.ExpiresAt) {
		return ErrOTPExpired
	}
	if otp.OTP != code {
		return ErrOTPMismatch
	}

	if err := s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		if errors.Is(err, datastore.ErrNoMatch) {
			// A concurrent verify consumed the row first
			return ErrOTPAlreadyUsed
		}
		return err
	}
	return nil
}

// CleanupExpired bulk-deletes expired rows; best-effort, errors swallowed
func (s *OTPService) CleanupExpired(ctx context.Context) {
	if err := s.otpRepo.DeleteExpired(ctx, time.Now()); err != nil {
		log.Printf("⚠️ OTP cleanup failed: %v", err)
	}
}
