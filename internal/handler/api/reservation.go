package api

import (
	"errors"
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationUseCase usecase.ReservationUseCase
}

func NewReservationHandler(reservationUseCase usecase.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{
		reservationUseCase: reservationUseCase,
	}
}

// @Summary Create a reservation
// @Description Book a room for a stay period
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}

	rm, err := h.reservationUseCase.Create(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, usecase.ErrRoomUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room is not available for the requested period",
			})
		case errors.Is(err, usecase.ErrInvalidReservation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid reservation data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationRM(rm))
}

// @Summary Get reservation details
// @Description Get a reservation by ID (owner or staff)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	rm, err := h.reservationUseCase.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationRM(rm))
}

// @Summary List my reservations
// @Description List the authenticated user's reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} map[string]string
// @Router /reservations/my-reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	rms, err := h.reservationUseCase.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	result := make([]*resdto.ReservationListResponse, len(rms))
	for i := range rms {
		result[i] = resdto.FromReservationListRM(&rms[i])
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List all reservations
// @Description List every reservation, optionally filtered by status (staff only)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) ListAll(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	rms, err := h.reservationUseCase.ListAll(c.Request.Context(), status)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidReservation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status filter",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationRMs(rms))
}

// @Summary List reservations by date range
// @Description List reservations whose stay intersects a date range (staff only)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Router /reservations/date-range [get]
func (h *ReservationHandler) ListByDateRange(c *gin.Context) {
	from, err := reqdto.ParseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid from date",
		})
		return
	}
	to, err := reqdto.ParseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid to date",
		})
		return
	}

	rms, err := h.reservationUseCase.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidReservation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationRMs(rms))
}

// @Summary Update a reservation
// @Description Reschedule a pending or confirmed reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Reschedule request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}

	rm, err := h.reservationUseCase.Update(c.Request.Context(), id, userID, role, input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, usecase.ErrRoomUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room is not available for the requested period",
			})
		case errors.Is(err, usecase.ErrReservationNotEditable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Reservation can no longer be modified",
			})
		case errors.Is(err, usecase.ErrInvalidReservation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid reservation data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationRM(rm))
}

// @Summary Cancel a reservation
// @Description Cancel a pending or confirmed reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	// Empty body means cancellation with no reason.
	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	rm, err := h.reservationUseCase.Cancel(c.Request.Context(), id, userID, role, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, usecase.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation cannot be cancelled in its current status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationRM(rm))
}
