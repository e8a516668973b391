package bookingRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no booking exists for the given id.
var ErrNotFound = errors.New("booking not found")

// BookingRepository persists confirmed appointments. Bookings are never
// physically deleted; cancellation is a status change.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListByUser returns the user's bookings, most recently created first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	SetStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
}
