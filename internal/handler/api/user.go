package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "github.com/SrRalo/park-pal-reserva-facil/internal/handler/dto/request"
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/middleware"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler backs the admin user management endpoints.
type UserHandler struct {
	cmds  commands.UserCommands
	reads queries.UserQueries
}

func NewUserHandler(cmds commands.UserCommands, reads queries.UserQueries) *UserHandler {
	return &UserHandler{
		cmds:  cmds,
		reads: reads,
	}
}

// @Summary List all users (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.UserView
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	views, err := h.reads.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Change a user's role (admin)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body reqdto.ChangeRoleRequest true "Role request"
// @Success 200 {object} queries.UserView
// @Failure 400 {object} map[string]string
// @Router /users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req reqdto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cmds.ChangeRole(c.Request.Context(), actor, id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidUserInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		default:
			h.renderUserError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Deactivate a user (admin)
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Router /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.lifecycle(c, h.cmds.Deactivate)
}

// @Summary Reactivate a user (admin)
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Router /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	h.lifecycle(c, h.cmds.Activate)
}

// @Summary Delete a user (admin)
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	h.lifecycle(c, h.cmds.Delete)
}

func (h *UserHandler) lifecycle(c *gin.Context, fn func(ctx context.Context, actor shared.Actor, id uuid.UUID) error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := fn(c.Request.Context(), actor, id); err != nil {
		h.renderUserError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) renderUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, commands.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, commands.ErrCannotEditSelf):
		c.JSON(http.StatusConflict, gin.H{"error": "Admins cannot change their own account"})
	case errors.Is(err, commands.ErrUserHasOpenItems):
		c.JSON(http.StatusConflict, gin.H{"error": "User still holds pending or active reservations"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
