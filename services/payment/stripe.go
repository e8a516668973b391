package payment

import (
	"context"
	"fmt"

	"medibook/models"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeVerifier resolves a transaction against Stripe. The PaymentIntent is
// looked up by our transaction id, which the checkout integration stores in
// the intent's metadata.
type StripeVerifier struct{}

// Verify maps the Stripe PaymentIntent status onto our payment statuses.
// A rail that has not decided yet keeps the transaction pending.
func (v *StripeVerifier) Verify(ctx context.Context, p *models.Payment) (models.PaymentStatus, error) {
	params := &stripe.PaymentIntentSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("metadata['transaction_id']:'%s'", p.TransactionID),
			Context: ctx,
		},
	}
	iter := paymentintent.Search(params)
	for iter.Next() {
		pi := iter.PaymentIntent()
		switch pi.Status {
		case stripe.PaymentIntentStatusSucceeded:
			return models.PaymentSuccess, nil
		case stripe.PaymentIntentStatusCanceled:
			return models.PaymentFailed, nil
		default:
			return models.PaymentPending, nil
		}
	}
	if err := iter.Err(); err != nil {
		return models.PaymentPending, fmt.Errorf("stripe search failed: %w", err)
	}
	// No intent on the rail yet; keep polling.
	return models.PaymentPending, nil
}
