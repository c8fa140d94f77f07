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

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

// @Summary Create a payment intent
// @Description Open a payment intent for a pending reservation
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateIntentRequest true "Payment intent request"
// @Success 201 {object} usecase.PaymentIntentResult
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/create-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.paymentUseCase.CreateIntent(c.Request.Context(), req.ReservationID, userID)
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
		case errors.Is(err, usecase.ErrInvalidPaymentState):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Reservation is not payable in its current state",
			})
		case errors.Is(err, usecase.ErrPaymentGateway):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment provider is unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary Confirm a payment
// @Description Verify a payment intent at the gateway and confirm the reservation
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmPaymentRequest true "Confirmation request"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/confirm [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rm, err := h.paymentUseCase.Confirm(c.Request.Context(), req.PaymentIntentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, usecase.ErrPaymentNotCompleted):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Payment has not completed at the gateway",
			})
		case errors.Is(err, usecase.ErrInvalidPaymentState), errors.Is(err, usecase.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Payment cannot be confirmed in its current state",
			})
		case errors.Is(err, usecase.ErrPaymentGateway):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment provider is unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionRM(rm))
}

// @Summary Refund a transaction
// @Description Refund a succeeded transaction, fully or partially (staff only)
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body reqdto.RefundRequest false "Refund request"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	var req reqdto.RefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	rm, err := h.paymentUseCase.Refund(c.Request.Context(), id, req.AmountCents, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
		case errors.Is(err, usecase.ErrInvalidPaymentInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid refund amount",
			})
		case errors.Is(err, usecase.ErrTransactionNotRefundable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Transaction cannot be refunded",
			})
		case errors.Is(err, usecase.ErrPaymentGateway):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment provider is unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionRM(rm))
}

// @Summary Get transaction details
// @Description Get a transaction by ID (owner or staff)
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
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
			"error": "Invalid transaction ID format",
		})
		return
	}

	rm, err := h.paymentUseCase.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
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

	c.JSON(http.StatusOK, resdto.FromTransactionRM(rm))
}

// @Summary Payment history
// @Description List the authenticated user's transactions
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.TransactionResponse
// @Failure 401 {object} map[string]string
// @Router /payments/history [get]
func (h *PaymentHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	rms, err := h.paymentUseCase.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionRMs(rms))
}

// @Summary List all transactions
// @Description List every transaction (staff only)
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.TransactionResponse
// @Router /payments [get]
func (h *PaymentHandler) ListAll(c *gin.Context) {
	rms, err := h.paymentUseCase.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionRMs(rms))
}
