package booking

import (
	"context"
	"time"

	"medibook/models"
)

// Service manages confirmed appointments for patients.
type Service interface {
	// CreateBooking persists a confirmed appointment. When the input
	// references a payment, that payment must have settled successfully.
	CreateBooking(ctx context.Context, userID string, in models.BookingInput) (*models.Booking, error)
	// ListBookings returns the user's bookings partitioned into current
	// (upcoming, not cancelled) and recent (everything else), newest first.
	ListBookings(ctx context.Context, userID string, now time.Time) (*models.BookingList, error)
	// CancelBooking soft-cancels an appointment owned by the caller.
	// Cancelling an already-cancelled booking is a no-op.
	CancelBooking(ctx context.Context, userID, bookingID string) error
}
