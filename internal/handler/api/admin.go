package api

import (
	"errors"
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

// @Summary Dashboard statistics
// @Description Aggregate occupancy, revenue, and reservation counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} readmodel.DashboardRM
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	rm, err := h.adminUseCase.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, rm)
}

// @Summary Room statistics
// @Description Per-room-type inventory and pricing statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} readmodel.RoomTypeStatsRM
// @Router /admin/rooms/statistics [get]
func (h *AdminHandler) RoomStats(c *gin.Context) {
	rms, err := h.adminUseCase.RoomStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, rms)
}

// @Summary Reservation statistics
// @Description Reservation counts by status and total revenue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} readmodel.ReservationStatsRM
// @Router /admin/reservations/statistics [get]
func (h *AdminHandler) ReservationStats(c *gin.Context) {
	rm, err := h.adminUseCase.ReservationStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, rm)
}

// @Summary Override reservation status
// @Description Walk a reservation through its lifecycle (check-in, check-out, cancel)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationStatusRequest true "Status update request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/reservations/{id}/status [put]
func (h *AdminHandler) OverrideReservationStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rm, err := h.adminUseCase.OverrideReservationStatus(c.Request.Context(), id, req.Status, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, usecase.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Invalid status transition",
			})
		case errors.Is(err, usecase.ErrInvalidReservation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status value",
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

// @Summary List users
// @Description List all users with reservation counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} readmodel.UserListRM
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	rms, err := h.adminUseCase.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, rms)
}

// @Summary Get user details
// @Description Get a single user by ID
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} readmodel.AuthorizedUserRM
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	rm, err := h.adminUseCase.GetUser(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, rm)
}

// @Summary Activate or deactivate a user
// @Description Toggle a user's active flag (admin only)
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body reqdto.UpdateUserStatusRequest true "Status request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id}/status [put]
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	var req reqdto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.adminUseCase.SetUserActive(c.Request.Context(), id, *req.IsActive); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete a user
// @Description Delete a user with no reservations (admin only)
// @Tags admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	if err := h.adminUseCase.DeleteUser(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusConflict, gin.H{
				"error": "User has reservations and cannot be deleted",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
