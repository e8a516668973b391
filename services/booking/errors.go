package booking

import "errors"

// ErrNotFound is returned when the booking does not exist.
var ErrNotFound = errors.New("booking not found")

// ErrNotOwner is returned when a caller operates on another user's booking.
var ErrNotOwner = errors.New("booking belongs to another user")

// ErrPaymentNotSettled is returned when a booking references a transaction
// that has not reached success. A booking must never be recorded for a
// pending or failed payment.
var ErrPaymentNotSettled = errors.New("payment has not settled successfully")

// ErrInvalidBooking is returned when required booking fields are missing.
var ErrInvalidBooking = errors.New("invalid booking input")
