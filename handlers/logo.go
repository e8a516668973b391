package handlers

import (
	"net/http"

	"medibook/services/logo"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogoHandler serves on-demand app logo generation.
type LogoHandler struct {
	svc    logo.Service
	logger *zap.Logger
}

// NewLogoHandler constructs a LogoHandler.
func NewLogoHandler(svc logo.Service, logger *zap.Logger) *LogoHandler {
	return &LogoHandler{svc: svc, logger: logger}
}

type logoRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateLogoHandler generates a logo image and returns its hosted URL.
func (h *LogoHandler) GenerateLogoHandler(c *gin.Context) {
	var req logoRequest
	// Body is optional; an empty prompt uses the default.
	_ = c.ShouldBindJSON(&req)

	res, err := h.svc.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("logo generation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate logo", "")
		return
	}
	c.JSON(http.StatusOK, res)
}
