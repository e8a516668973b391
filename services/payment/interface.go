package payment

import (
	"context"

	"medibook/models"
)

// CreateIntentInput carries the descriptive payload captured when a payment
// attempt starts. All fields are immutable once the transaction is created.
type CreateIntentInput struct {
	DoctorName   string  `json:"doctorName"`
	HospitalName string  `json:"hospitalName"`
	Amount       float64 `json:"amount"`
	SlotDate     string  `json:"slotDate"`
	SlotTime     string  `json:"slotTime"`
	UPIID        string  `json:"upiId"`
}

// Service creates payment intents and reports their status.
type Service interface {
	// CreateIntent persists a new pending transaction and schedules its
	// settlement. On persistence failure no transaction id is returned.
	CreateIntent(ctx context.Context, in CreateIntentInput) (*models.Payment, error)
	// CheckStatus returns the persisted transaction, or ErrNotFound for an
	// unknown id.
	CheckStatus(ctx context.Context, transactionID string) (*models.Payment, error)
	// Settle resolves a pending transaction through the configured verifier.
	// Settling an already-terminal transaction is a no-op.
	Settle(ctx context.Context, transactionID string) error
}
