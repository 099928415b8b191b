package services

import (
	"context"
	"log"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/repositories"
	"github.com/robfig/cron/v3"
)

// CronService runs the periodic best-effort cleanup of expired OTP and
// session rows. Failures are logged, never propagated.
type CronService struct {
	cron        *cron.Cron
	otpService  *OTPService
	sessionRepo repositories.SessionRepository
}

// NewCronService creates a new cron service
func NewCronService(otpService *OTPService, sessionRepo repositories.SessionRepository) *CronService {
	return &CronService{
		cron:        cron.New(),
		otpService:  otpService,
		sessionRepo: sessionRepo,
	}
}

// Start schedules the cleanup job every 5 minutes
func (s *CronService) Start() {
	_, err := s.cron.AddFunc("*/5 * * * *", s.cleanup)
	if err != nil {
		log.Printf("❌ Failed to schedule cleanup job: %v", err)
		return
	}
	s.cron.Start()
	log.Println("✅ Cleanup scheduler started (every 5 minutes)")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Cleanup scheduler stopped")
}

func (s *CronService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	s.otpService.CleanupExpired(ctx)

	if err := s.sessionRepo.DeleteExpired(ctx, time.Now()); err != nil {
		log.Printf("⚠️ Session cleanup failed: %v", err)
	}
}
