package api

import (
	"errors"
	"net/http"

	reqdto "github.com/SrRalo/park-pal-reserva-facil/internal/handler/dto/request"
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/middleware"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	cmds  commands.VehicleCommands
	reads queries.VehicleQueries
}

func NewVehicleHandler(cmds commands.VehicleCommands, reads queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{
		cmds:  cmds,
		reads: reads,
	}
}

// @Summary List the caller's vehicles
// @Tags vehicles
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.VehicleView
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.reads.ListByUser(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Register a vehicle
// @Tags vehicles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterVehicleRequest true "Vehicle request"
// @Success 201 {object} queries.VehicleView
// @Failure 409 {object} map[string]string
// @Router /vehicles [post]
func (h *VehicleHandler) Register(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cmds.Register(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPlateAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "License plate is already registered"})
		case errors.Is(err, commands.ErrInvalidVehicle):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Update vehicle details
// @Tags vehicles
// @Security BearerAuth
// @Accept json
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.UpdateVehicleRequest true "Update request"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Router /vehicles/{id} [patch]
func (h *VehicleHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	var req reqdto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.cmds.Update(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		h.renderVehicleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete a vehicle
// @Tags vehicles
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		h.renderVehicleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *VehicleHandler) renderVehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
	case errors.Is(err, commands.ErrNotVehicleOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Vehicle does not belong to you"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
