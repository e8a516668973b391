package payment

import (
	"errors"

	paymentRepo "medibook/database/repository/payment"
)

// ErrNotFound marks a probe for an unknown transaction id. Pollers must stop
// on this error; any other probe error is treated as transient.
var ErrNotFound = errors.New("payment not found")

// ErrInvalidIntent marks a create request that failed validation.
var ErrInvalidIntent = errors.New("invalid payment intent")

// IsNotFound reports whether err means the transaction id is unknown, at
// either the service or the repository layer.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, paymentRepo.ErrNotFound)
}
