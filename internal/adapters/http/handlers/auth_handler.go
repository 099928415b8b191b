package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/config"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/services"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles citizen authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cfg:         cfg,
	}
}

// SendOTPRequest represents the OTP request body
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	VoterID     string `json:"voterId"`
}

// VerifyOTPRequest represents the OTP verification body
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
	VoterID     string `json:"voterId"`
}

// SendOTP handles the OTP request step of citizen login
// @Summary Request OTP
// @Description Validate voter eligibility and send an OTP to the phone number
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SendOTPRequest true "Phone number and voter ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PhoneNumber == "" {
		return response.BadRequest(c, "Phone number is required")
	}
	if req.VoterID == "" {
		return response.BadRequest(c, "Voter ID is required")
	}

	result, err := h.authService.RequestOTP(c.Context(), strings.TrimSpace(req.PhoneNumber), strings.TrimSpace(req.VoterID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVoterMismatch):
			return response.Unauthorized(c, "Voter ID not linked to this phone number")
		case errors.Is(err, domain.ErrVoterIneligible):
			return response.Unauthorized(c, "Invalid voter ID")
		default:
			log.Printf("❌ OTP request failed: %v", err)
			return response.InternalServerError(c, "Failed to send OTP")
		}
	}

	data := fiber.Map{"expires_in": result.ExpiresIn}
	// Dev-only fallback when SMS delivery failed; never set in prod
	if result.EchoedOTP != "" {
		data["otp"] = result.EchoedOTP
	}
	return response.Success(c, "OTP sent successfully", data)
}

// VerifyOTP handles the verification step of citizen login
// @Summary Verify OTP
// @Description Verify the OTP and return a citizen access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body VerifyOTPRequest true "Phone number, OTP and voter ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PhoneNumber == "" {
		return response.BadRequest(c, "Phone number is required")
	}
	if req.OTP == "" {
		return response.BadRequest(c, "OTP is required")
	}

	result, err := h.authService.VerifyOTP(c.Context(), strings.TrimSpace(req.PhoneNumber), strings.TrimSpace(req.OTP), strings.TrimSpace(req.VoterID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOTPNotFound):
			return response.Unauthorized(c, "OTP not found")
		case errors.Is(err, services.ErrOTPAlreadyUsed):
			return response.Unauthorized(c, "OTP already used")
		case errors.Is(err, services.ErrOTPExpired):
			return response.Unauthorized(c, "OTP expired")
		case errors.Is(err, services.ErrOTPMismatch):
			return response.Unauthorized(c, "Invalid OTP")
		case errors.Is(err, domain.ErrVoterIneligible):
			return response.Unauthorized(c, "Invalid voter ID")
		default:
			log.Printf("❌ OTP verification failed: %v", err)
			return response.InternalServerError(c, "Failed to verify OTP")
		}
	}

	return response.Success(c, "Login successful", result)
}

// Me returns the authenticated citizen's own record
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal := c.Locals("principal").(*domain.Principal)
	return response.Success(c, "", principal.User)
}

// UpdateProfile updates the authenticated citizen's own profile
// @Summary Update own profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.UserProfileUpdate true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal := c.Locals("principal").(*domain.Principal)

	var input struct {
		FirstName         *string `json:"firstName"`
		LastName          *string `json:"lastName"`
		Email             *string `json:"email"`
		ProfilePictureURL *string `json:"profilePictureUrl"`
		Address           *string `json:"address"`
		Description       *string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Context(), principal.User.ID, toProfileUpdate(input.FirstName, input.LastName, input.Email, input.ProfilePictureURL, input.Address, input.Description), principal.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		log.Printf("❌ Profile update failed: %v", err)
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", user)
}

// Logout invalidates all of the caller's active sessions
// @Summary Logout
// @Description Invalidate every active session for the caller
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal := c.Locals("principal").(*domain.Principal)

	if err := h.authService.Logout(c.Context(), principal.User.ID); err != nil {
		log.Printf("❌ Logout failed: %v", err)
		return response.InternalServerError(c, "Failed to logout")
	}
	return response.Success(c, "Logged out successfully", nil)
}

// ValidateVoterID checks a voter-id code against the electoral roll (public)
// @Summary Validate voter ID
// @Tags Auth
// @Produce json
// @Param voterId path string true "Voter ID code"
// @Success 200 {object} response.Response
// @Router /auth/validate-voter-id/{voterId} [get]
func (h *AuthHandler) ValidateVoterID(c *fiber.Ctx) error {
	voterID := c.Params("voterId")
	isValid := h.authService.IsVoterEligible(c.Context(), voterID)
	return response.Success(c, "", fiber.Map{
		"voter_id": voterID,
		"is_valid": isValid,
	})
}
