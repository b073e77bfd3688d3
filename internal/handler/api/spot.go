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

type SpotHandler struct {
	cmds  commands.SpotCommands
	reads queries.SpotQueries
}

func NewSpotHandler(cmds commands.SpotCommands, reads queries.SpotQueries) *SpotHandler {
	return &SpotHandler{
		cmds:  cmds,
		reads: reads,
	}
}

// @Summary List available spots
// @Tags spots
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.SpotView
// @Router /spots [get]
func (h *SpotHandler) ListAvailable(c *gin.Context) {
	views, err := h.reads.ListAvailable(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary List the caller's spots (operator)
// @Tags spots
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.SpotView
// @Router /spots/mine [get]
func (h *SpotHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.reads.ListByOwner(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary List every spot (admin)
// @Tags spots
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.SpotView
// @Router /spots/all [get]
func (h *SpotHandler) ListAll(c *gin.Context) {
	views, err := h.reads.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get one spot
// @Tags spots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Spot ID"
// @Success 200 {object} queries.SpotView
// @Failure 404 {object} map[string]string
// @Router /spots/{id} [get]
func (h *SpotHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid spot ID"})
		return
	}

	view, err := h.reads.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Create a spot (operator)
// @Tags spots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateSpotRequest true "Spot request"
// @Success 201 {object} queries.SpotView
// @Failure 400 {object} map[string]string
// @Router /spots [post]
func (h *SpotHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidSpot):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid spot data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Update a spot (owner or admin)
// @Tags spots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Spot ID"
// @Param request body reqdto.UpdateSpotRequest true "Update request"
// @Success 200 {object} queries.SpotView
// @Failure 403 {object} map[string]string
// @Router /spots/{id} [patch]
func (h *SpotHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid spot ID"})
		return
	}

	var req reqdto.UpdateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cmds.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.renderSpotError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Delete a spot (owner or admin)
// @Tags spots
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Router /spots/{id} [delete]
func (h *SpotHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid spot ID"})
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrSpotHasOpenReservations):
			c.JSON(http.StatusConflict, gin.H{"error": "Spot has pending or active reservations"})
		default:
			h.renderSpotError(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SpotHandler) renderSpotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSpotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
	case errors.Is(err, commands.ErrNotSpotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Spot does not belong to you"})
	case errors.Is(err, commands.ErrInvalidSpot):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid spot data"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
