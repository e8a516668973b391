package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email/password pair. The
// message is deliberately the same for both cases.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when registering with an email that already has
// an account.
var ErrEmailTaken = errors.New("a user with this email already exists")

// DefaultUserService implements Service.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

// Register validates basic data, hashes the password, persists the account
// and issues an auth token.
func (s *DefaultUserService) Register(ctx context.Context, u models.User) (*AuthResponse, error) {
	if u.Email == "" || u.Password == "" || u.Username == "" {
		return nil, fmt.Errorf("username, email and password are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		s.Logger.Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	u.ID = uuid.New().String()
	u.PasswordHash = string(hashedPassword)
	u.Password = ""
	u.CreatedAt = now
	u.UpdatedAt = now

	token, err := utils.GenerateToken(u.ID, u.Email, utils.AuthTokenTTL)
	if err != nil {
		s.Logger.Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	u.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(ctx, &u); err != nil {
		s.Logger.Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	s.cacheTokenHash(ctx, u.ID, u.TokenHash)

	return &AuthResponse{ID: u.ID, Token: token, Username: u.Username, Email: u.Email}, nil
}

// SignIn verifies credentials and issues a fresh auth token.
func (s *DefaultUserService) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.Logger.Error("SignIn: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, utils.AuthTokenTTL)
	if err != nil {
		s.Logger.Error("SignIn: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateTokenHash(ctx, u.ID, tokenHash); err != nil {
		s.Logger.Error("SignIn: failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	s.cacheTokenHash(ctx, u.ID, tokenHash)

	return &AuthResponse{ID: u.ID, Token: token, Username: u.Username, Email: u.Email}, nil
}

// GetUserByID fetches a user record.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UpdateFCMToken stores the user's push notification token.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	return s.Repo.UpdateFCMToken(ctx, userID, fcmToken)
}

// cacheTokenHash mirrors the stored token hash into the auth cache so the
// middleware can validate without a DB round trip. Best effort.
func (s *DefaultUserService) cacheTokenHash(ctx context.Context, userID, tokenHash string) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return
	}
	key := utils.AuthCachePrefix + userID
	if err := authCache.Set(ctx, key, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache auth token hash", zap.Error(err))
	}
}
