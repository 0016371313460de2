package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/SscSPs/notes_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes. Users can only see and change themselves.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.PATCH("/me", h.updateMe)
		users.PATCH("/me/password", h.changePassword)
	}
}

// getMe godoc
// @Summary Get the current user
// @Description Retrieves the profile of the authenticated user
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security CookieAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res := h.userService.GetUserByID(c.Request.Context(), userID)
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(res.Value()))
}

// updateMe godoc
// @Summary Update the current user
// @Description Updates the profile of the authenticated user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security CookieAuth
// @Router /users/me [patch]
func (h *userHandler) updateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}

	middleware.GetLoggerFromContext(c).Info("User updated successfully")
	c.JSON(http.StatusOK, dto.ToUserResponse(res.Value()))
}

// changePassword godoc
// @Summary Change password
// @Description Replaces the password of the authenticated user after checking the old one
// @Tags users
// @Accept  json
// @Param   passwords body dto.ChangePasswordRequest true "Old and new password"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "Old password does not match"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security CookieAuth
// @Router /users/me/password [patch]
func (h *userHandler) changePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res := h.userService.ChangePassword(c.Request.Context(), userID, req)
	if res.IsFailure() {
		middleware.GetLoggerFromContext(c).Warn("Password change rejected", slog.String("reason", res.Failure().Message))
		respondFailure(c, res.Failure())
		return
	}
	c.Status(http.StatusNoContent)
}
