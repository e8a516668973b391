package userRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository persists patient accounts.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateTokenHash stores the hash of the user's active auth token.
	UpdateTokenHash(ctx context.Context, userID, tokenHash string) error
	UpdateFCMToken(ctx context.Context, userID, fcmToken string) error
}
