package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/services"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/password"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin authentication and management endpoints
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// AdminLoginRequest represents admin login body
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAdminRequest represents admin creation body
type CreateAdminRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Login authenticates an admin
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/auth/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	tokens, admin, err := h.adminService.Login(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid admin credentials")
		}
		log.Printf("❌ Admin login failed: %v", err)
		return response.InternalServerError(c, "Failed to login")
	}

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": tokens.AccessToken,
		"token_type":   tokens.TokenType,
		"expires_in":   tokens.ExpiresIn,
		"user_type":    tokens.UserType,
		"admin":        admin.ToResponse(),
	})
}

// Me returns the authenticated admin's own record
// @Summary Get current admin
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/auth/me [get]
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	principal := c.Locals("principal").(*domain.Principal)
	return response.Success(c, "", principal.Admin.ToResponse())
}

// Logout acknowledges an admin logout. Stateless: admin tokens have no
// server-side session, so expiry is their only revocation.
// @Summary Admin logout
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/auth/logout [post]
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	return response.Success(c, "Logged out successfully", nil)
}

// Validate confirms the presented admin token is still valid
// @Summary Validate admin token
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/auth/validate [get]
func (h *AdminHandler) Validate(c *fiber.Ctx) error {
	principal := c.Locals("principal").(*domain.Principal)
	return response.Success(c, "", fiber.Map{
		"valid":     true,
		"admin_id":  principal.Admin.ID,
		"user_type": "admin",
	})
}

// Create creates a new admin account
// @Summary Create admin
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAdminRequest true "New admin data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/auth/create [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var req CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if !password.ValidatePassword(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	admin, err := h.adminService.Create(c.Context(), &services.CreateAdminInput{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
	})
	if err != nil {
		log.Printf("❌ Admin creation failed: %v", err)
		return response.InternalServerError(c, "Failed to create admin")
	}

	return response.Created(c, "Admin created successfully", admin.ToResponse())
}

// List lists all admins
// @Summary List admins
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/auth/list [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.adminService.List(c.Context())
	if err != nil {
		log.Printf("❌ Admin list failed: %v", err)
		return response.InternalServerError(c, "Failed to list admins")
	}

	result := make([]*models.AdminResponse, 0, len(admins))
	for _, a := range admins {
		result = append(result, a.ToResponse())
	}
	return response.Success(c, "", result)
}

// Update updates an admin account
// @Summary Update admin
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adminId path string true "Admin ID"
// @Param body body models.AdminUpdate true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/auth/update/{adminId} [put]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	var input models.AdminUpdate
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.Update(c.Context(), c.Params("adminId"), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Admin not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "No fields to update")
		default:
			log.Printf("❌ Admin update failed: %v", err)
			return response.InternalServerError(c, "Failed to update admin")
		}
	}
	return response.Success(c, "Admin updated successfully", admin.ToResponse())
}

// Delete removes an admin account; self-deletion is rejected
// @Summary Delete admin
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param adminId path string true "Admin ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/auth/delete/{adminId} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	principal := c.Locals("principal").(*domain.Principal)

	err := h.adminService.Delete(c.Context(), c.Params("adminId"), principal.Admin.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfDelete):
			return response.BadRequest(c, "Cannot delete your own account")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Admin not found")
		default:
			log.Printf("❌ Admin deletion failed: %v", err)
			return response.InternalServerError(c, "Failed to delete admin")
		}
	}
	return response.Success(c, "Admin deleted successfully", nil)
}
