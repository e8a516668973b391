package handlers

import (
	"errors"
	"net/http"
	"time"

	"medibook/models"
	"medibook/services/booking"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves appointment endpoints. The acting user is always
// taken from the verified auth token, never from the request body.
type BookingHandler struct {
	svc    booking.Service
	logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// ListBookingsHandler returns the caller's bookings split into current and
// recent relative to today.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	userID := c.GetString("userID")

	list, err := h.svc.ListBookings(c.Request.Context(), userID, time.Now())
	if err != nil {
		h.logger.Error("failed to list bookings", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", "")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateBookingHandler records a confirmed appointment for the caller.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var in models.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking input", err.Error())
		return
	}

	b, err := h.svc.CreateBooking(c.Request.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidBooking):
			utils.JSONError(c, http.StatusBadRequest, "invalid booking input", err.Error())
		case errors.Is(err, booking.ErrPaymentNotSettled):
			// Not a payment decline: the referenced transaction simply has
			// not settled successfully.
			utils.JSONError(c, http.StatusConflict, "payment not settled", err.Error())
		default:
			h.logger.Error("failed to create booking", zap.String("userID", userID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", "")
		}
		return
	}
	c.JSON(http.StatusCreated, b)
}

// CancelBookingHandler soft-cancels one of the caller's bookings.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")
	bookingID := c.Param("id")

	if err := h.svc.CancelBooking(c.Request.Context(), userID, bookingID); err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		case errors.Is(err, booking.ErrNotOwner):
			utils.JSONError(c, http.StatusForbidden, "booking belongs to another user", "")
		default:
			h.logger.Error("failed to cancel booking", zap.String("bookingID", bookingID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
