package handlers

import (
	"errors"
	"net/http"
	"time"

	"medibook/services/directory"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DirectoryHandler serves the hospital/doctor directory.
type DirectoryHandler struct {
	svc    directory.Service
	logger *zap.Logger
}

// NewDirectoryHandler constructs a DirectoryHandler.
func NewDirectoryHandler(svc directory.Service, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{svc: svc, logger: logger}
}

// ListHospitalsHandler returns all hospitals, highest rated first.
func (h *DirectoryHandler) ListHospitalsHandler(c *gin.Context) {
	hospitals, err := h.svc.ListHospitals(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list hospitals", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list hospitals", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"hospitals": hospitals})
}

// ListDoctorsHandler returns a hospital's available doctors.
func (h *DirectoryHandler) ListDoctorsHandler(c *gin.Context) {
	hospitalID := c.Param("id")

	doctors, err := h.svc.ListDoctors(c.Request.Context(), hospitalID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "hospital not found", "")
			return
		}
		h.logger.Error("failed to list doctors", zap.String("hospitalID", hospitalID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list doctors", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

// ListSlotsHandler returns a doctor's bookable slots from today onward.
func (h *DirectoryHandler) ListSlotsHandler(c *gin.Context) {
	doctorID := c.Param("id")

	slots, err := h.svc.ListSlots(c.Request.Context(), doctorID, time.Now())
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "doctor not found", "")
			return
		}
		h.logger.Error("failed to list slots", zap.String("doctorID", doctorID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list slots", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
