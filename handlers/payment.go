package handlers

import (
	"errors"
	"net/http"

	"medibook/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves the payment verification endpoint.
type PaymentHandler struct {
	svc    payment.Service
	logger *zap.Logger
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(svc payment.Service, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, logger: logger}
}

type verifyPaymentRequest struct {
	Action        string  `json:"action" binding:"required"`
	TransactionID string  `json:"transactionId"`
	DoctorName    string  `json:"doctorName"`
	HospitalName  string  `json:"hospitalName"`
	Amount        float64 `json:"amount"`
	SlotDate      string  `json:"slotDate"`
	SlotTime      string  `json:"slotTime"`
	UPIID         string  `json:"upiId"`
}

// VerifyPaymentHandler dispatches on the request's action: "create" issues a
// new pending transaction, "check" probes an existing one.
func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request: " + err.Error()})
		return
	}

	switch req.Action {
	case "create":
		h.create(c, req)
	case "check":
		h.check(c, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid action"})
	}
}

func (h *PaymentHandler) create(c *gin.Context, req verifyPaymentRequest) {
	p, err := h.svc.CreateIntent(c.Request.Context(), payment.CreateIntentInput{
		DoctorName:   req.DoctorName,
		HospitalName: req.HospitalName,
		Amount:       req.Amount,
		SlotDate:     req.SlotDate,
		SlotTime:     req.SlotTime,
		UPIID:        req.UPIID,
	})
	if err != nil {
		if errors.Is(err, payment.ErrInvalidIntent) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		h.logger.Error("payment creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transactionId": p.TransactionID,
		"status":        p.Status,
	})
}

func (h *PaymentHandler) check(c *gin.Context, req verifyPaymentRequest) {
	if req.TransactionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Transaction ID required"})
		return
	}

	p, err := h.svc.CheckStatus(c.Request.Context(), req.TransactionID)
	if err != nil {
		if payment.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Payment not found"})
			return
		}
		h.logger.Error("payment status check failed", zap.String("transactionID", req.TransactionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to check payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  p.Status,
		"payment": p,
	})
}
