package api

import (
	"errors"
	"net/http"

	reqdto "github.com/SrRalo/park-pal-reserva-facil/internal/handler/dto/request"
	resdto "github.com/SrRalo/park-pal-reserva-facil/internal/handler/dto/response"
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/middleware"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds  commands.ReservationCommands
	reads queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, reads queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		cmds:  cmds,
		reads: reads,
	}
}

// @Summary Create a reservation
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} queries.ReservationView
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		case errors.Is(err, commands.ErrSpotUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Spot is not available"})
		case errors.Is(err, commands.ErrReservationLimitExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": "Active reservation limit reached"})
		case errors.Is(err, commands.ErrInvalidStayWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Estimated exit must be after estimated entry"})
		case errors.Is(err, commands.ErrInvalidLicensePlate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "License plate is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary List reservations visible to the caller
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.ReservationView
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.reads.ListForActor(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get one reservation
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	view, err := h.reads.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.renderReadError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Get a reservation ticket
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.TicketView
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/ticket [get]
func (h *ReservationHandler) Ticket(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	ticket, err := h.reads.Ticket(c.Request.Context(), actor, id)
	if err != nil {
		h.renderReadError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// @Summary Cancel a pending reservation
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, commands.ErrNotReservationOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Reservation does not belong to you"})
		case errors.Is(err, commands.ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": "Only pending reservations can be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Register vehicle entry
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/entry [post]
func (h *ReservationHandler) RegisterEntry(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	view, err := h.cmds.RegisterEntry(c.Request.Context(), actor, id)
	if err != nil {
		h.renderLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Register vehicle exit and bill the stay
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ExitResponse
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/exit [post]
func (h *ReservationHandler) RegisterExit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	view, cost, err := h.cmds.RegisterExit(c.Request.Context(), actor, id)
	if err != nil {
		h.renderLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ExitResponse{
		Reservation: view,
		TotalCost:   cost,
	})
}

// @Summary Close a reservation without billing (admin)
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	if err := h.cmds.Complete(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, queries.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, commands.ErrAlreadyFinished):
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation is already completed or cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) renderReadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, queries.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *ReservationHandler) renderLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, commands.ErrSpotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
	case errors.Is(err, commands.ErrNotSpotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Spot does not belong to you"})
	case errors.Is(err, commands.ErrEntryNotAllowed):
		c.JSON(http.StatusConflict, gin.H{"error": "Entry can only be registered for pending reservations"})
	case errors.Is(err, commands.ErrExitNotAllowed):
		c.JSON(http.StatusConflict, gin.H{"error": "Exit can only be registered for active reservations"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
