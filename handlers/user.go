package handlers

import (
	"errors"
	"net/http"

	"medibook/models"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves registration, sign-in and profile endpoints.
type UserHandler struct {
	svc    user.Service
	logger *zap.Logger
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(svc user.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterHandler creates a patient account and returns an auth token.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid registration input", err.Error())
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "email already registered", "")
			return
		}
		h.logger.Error("registration failed", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to register", "")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInHandler authenticates a patient and returns a fresh token.
func (h *UserHandler) SignInHandler(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid sign-in input", err.Error())
		return
	}

	resp, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid email or password", "")
			return
		}
		h.logger.Error("sign-in failed", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to sign in", "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProfileHandler returns the caller's account.
func (h *UserHandler) ProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")

	u, err := h.svc.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found", "")
		return
	}
	u.Password = ""
	u.PasswordHash = ""
	u.TokenHash = ""
	c.JSON(http.StatusOK, u)
}

type fcmTokenRequest struct {
	FCMToken string `json:"fcmToken" binding:"required"`
}

// UpdateFCMTokenHandler stores the caller's device token for push delivery.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.svc.UpdateFCMToken(c.Request.Context(), userID, req.FCMToken); err != nil {
		h.logger.Error("failed to update device token", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update device token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
