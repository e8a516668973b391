package payment

import (
	"context"
	"math/rand"

	"medibook/models"
)

// Verifier decides the terminal outcome of a pending transaction. The
// simulated implementation stands in for a real payment gateway; a
// webhook-driven gateway can replace it without touching the poller or the
// settlement worker.
type Verifier interface {
	Verify(ctx context.Context, p *models.Payment) (models.PaymentStatus, error)
}

// SimulatedVerifier approves every transaction after the settle delay,
// optionally declining a configurable fraction to exercise failure paths.
type SimulatedVerifier struct {
	// FailureRate in [0,1); 0 means every payment succeeds.
	FailureRate float64
}

func (v *SimulatedVerifier) Verify(ctx context.Context, p *models.Payment) (models.PaymentStatus, error) {
	if v.FailureRate > 0 && rand.Float64() < v.FailureRate {
		return models.PaymentFailed, nil
	}
	return models.PaymentSuccess, nil
}
