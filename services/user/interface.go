package user

import (
	"context"

	"medibook/models"
)

// AuthResponse is returned on successful registration or sign-in.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Service manages patient accounts and authentication.
type Service interface {
	Register(ctx context.Context, u models.User) (*AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (*AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, fcmToken string) error
}
