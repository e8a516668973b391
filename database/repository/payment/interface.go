package paymentRepo

import (
	"context"
	"errors"
	"time"

	"medibook/models"
)

// ErrNotFound is returned when no payment exists for a transaction id.
var ErrNotFound = errors.New("payment not found")

// ErrAlreadySettled is returned when a settle update targets a payment
// whose status already left pending. The stored status is never overwritten.
var ErrAlreadySettled = errors.New("payment already settled")

// PaymentRepository persists payment attempts keyed by transaction id.
type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	// MarkSettled moves a pending payment to the given terminal status.
	// It is the only mutation; a payment that is already terminal is left
	// untouched and ErrAlreadySettled is returned.
	MarkSettled(ctx context.Context, transactionID string, status models.PaymentStatus) error
	// ListStalePending returns pending payments created before the cutoff,
	// for the reconciliation sweep.
	ListStalePending(ctx context.Context, cutoff time.Time) ([]models.Payment, error)
}
