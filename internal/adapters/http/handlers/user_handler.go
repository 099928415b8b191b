package handlers

import (
	"errors"
	"log"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/services"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/pagination"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the admin-facing user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List lists users with paging
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, err := h.userService.List(c.Context(), params.Skip, params.Take)
	if err != nil {
		log.Printf("❌ User list failed: %v", err)
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "", fiber.Map{
		"users": users,
		"meta":  pagination.GetMeta(params, len(users)),
	})
}

// Get gets a user by id
// @Summary Get user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{userId} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(c.Context(), c.Params("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		log.Printf("❌ User fetch failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch user")
	}
	return response.Success(c, "", user)
}

// Update applies an admin-driven update to a user's profile fields
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param body body models.UserProfileUpdate true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{userId} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var input models.UserProfileUpdate
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), c.Params("userId"), &input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		log.Printf("❌ User update failed: %v", err)
		return response.InternalServerError(c, "Failed to update user")
	}
	return response.Success(c, "User updated successfully", user)
}

// Deactivate soft-deletes a user (isActive=false)
// @Summary Deactivate user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{userId} [delete]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.userService.Deactivate(c.Context(), c.Params("userId")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		log.Printf("❌ User deactivation failed: %v", err)
		return response.InternalServerError(c, "Failed to deactivate user")
	}
	return response.Success(c, "User deactivated successfully", nil)
}

// toProfileUpdate builds the store update payload from optional fields
func toProfileUpdate(firstName, lastName, email, pictureURL, address, description *string) *models.UserProfileUpdate {
	return &models.UserProfileUpdate{
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		ProfilePictureURL: pictureURL,
		Address:           address,
		Description:       description,
	}
}
