package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomUseCase usecase.RoomUseCase
}

func NewRoomHandler(roomUseCase usecase.RoomUseCase) *RoomHandler {
	return &RoomHandler{
		roomUseCase: roomUseCase,
	}
}

// @Summary List rooms
// @Description List rooms, optionally filtered by type and price range
// @Tags rooms
// @Produce json
// @Param type query string false "Room type filter"
// @Param minPrice query int false "Minimum price in cents"
// @Param maxPrice query int false "Maximum price in cents"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var filter usecase.RoomFilter

	if roomType := c.Query("type"); roomType != "" {
		filter.RoomType = &roomType
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		v, err := strconv.ParseInt(minPrice, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid minPrice parameter",
			})
			return
		}
		filter.MinPriceCents = &v
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		v, err := strconv.ParseInt(maxPrice, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid maxPrice parameter",
			})
			return
		}
		filter.MaxPriceCents = &v
	}

	rms, err := h.roomUseCase.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomRMs(rms))
}

// @Summary Get room details
// @Description Get a single room by ID
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	rm, err := h.roomUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomRM(rm))
}

// @Summary List available rooms
// @Description List rooms with at least one free unit for a stay period
// @Tags rooms
// @Produce json
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Param guests query int false "Number of guests"
// @Success 200 {array} resdto.RoomAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/available [get]
func (h *RoomHandler) ListAvailable(c *gin.Context) {
	checkIn, err := reqdto.ParseDate(c.Query("checkIn"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid checkIn date",
		})
		return
	}
	checkOut, err := reqdto.ParseDate(c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid checkOut date",
		})
		return
	}

	guests := 1
	if g := c.Query("guests"); g != "" {
		guests, err = strconv.Atoi(g)
		if err != nil || guests < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid guests parameter",
			})
			return
		}
	}

	rms, err := h.roomUseCase.ListAvailable(c.Request.Context(), checkIn, checkOut, guests)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRoomInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid stay period",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	result := make([]*resdto.RoomAvailabilityResponse, len(rms))
	for i := range rms {
		result[i] = resdto.FromRoomAvailabilityRM(&rms[i])
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Check room availability
// @Description Check remaining units of a room for a stay period
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} usecase.AvailabilityResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	checkIn, err := reqdto.ParseDate(c.Query("checkIn"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid checkIn date",
		})
		return
	}
	checkOut, err := reqdto.ParseDate(c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid checkOut date",
		})
		return
	}

	result, err := h.roomUseCase.CheckAvailability(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, usecase.ErrInvalidRoomInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid stay period",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Create a room
// @Description Create a new room type (staff only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RoomRequest true "Room creation request"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req reqdto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rm, err := h.roomUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRoomInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid room data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRoomRM(rm))
}

// @Summary Update a room
// @Description Update an existing room (staff only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.RoomRequest true "Room update request"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rm, err := h.roomUseCase.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, usecase.ErrInvalidRoomInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid room data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomRM(rm))
}

// @Summary Delete a room
// @Description Delete a room with no reservations (staff only)
// @Tags rooms
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	if err := h.roomUseCase.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, usecase.ErrRoomHasReservations):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room has reservations and cannot be deleted",
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
