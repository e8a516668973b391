package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/models"
	"medibook/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPaymentService struct {
	payments map[string]*models.Payment
}

func (s *stubPaymentService) CreateIntent(ctx context.Context, in payment.CreateIntentInput) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, payment.ErrInvalidIntent
	}
	return &models.Payment{
		TransactionID: "TXN1750000000000ABCDEFGHI",
		Status:        models.PaymentPending,
		Amount:        in.Amount,
	}, nil
}

func (s *stubPaymentService) CheckStatus(ctx context.Context, transactionID string) (*models.Payment, error) {
	p, ok := s.payments[transactionID]
	if !ok {
		return nil, payment.ErrNotFound
	}
	return p, nil
}

func (s *stubPaymentService) Settle(ctx context.Context, transactionID string) error {
	panic("not used")
}

func verifyRouter(svc payment.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPaymentHandler(svc, zap.NewNop())
	r.POST("/api/payments/verify", h.VerifyPaymentHandler)
	return r
}

func postVerify(t *testing.T, r *gin.Engine, body map[string]any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestVerifyPaymentCreate(t *testing.T) {
	r := verifyRouter(&stubPaymentService{})

	w, resp := postVerify(t, r, map[string]any{
		"action":       "create",
		"doctorName":   "Dr. Sarah Johnson",
		"hospitalName": "City Hospital",
		"amount":       500,
		"upiId":        "cityhospital@upi",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "TXN1750000000000ABCDEFGHI", resp["transactionId"])
	assert.Equal(t, "pending", resp["status"])
}

func TestVerifyPaymentCheck(t *testing.T) {
	svc := &stubPaymentService{payments: map[string]*models.Payment{
		"TXN-ok": {TransactionID: "TXN-ok", Status: models.PaymentSuccess, Amount: 500},
	}}
	r := verifyRouter(svc)

	t.Run("known transaction", func(t *testing.T) {
		w, resp := postVerify(t, r, map[string]any{"action": "check", "transactionId": "TXN-ok"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "success", resp["status"])
		require.NotNil(t, resp["payment"])
		p := resp["payment"].(map[string]any)
		assert.Equal(t, "TXN-ok", p["transaction_id"])
	})

	t.Run("unknown transaction is 404", func(t *testing.T) {
		w, resp := postVerify(t, r, map[string]any{"action": "check", "transactionId": "TXN-missing"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Payment not found", resp["error"])
	})

	t.Run("missing transaction id is 400", func(t *testing.T) {
		w, _ := postVerify(t, r, map[string]any{"action": "check"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyPaymentInvalidAction(t *testing.T) {
	r := verifyRouter(&stubPaymentService{})

	w, resp := postVerify(t, r, map[string]any{"action": "refund"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Invalid action", resp["error"])
}

func TestVerifyPaymentInvalidIntent(t *testing.T) {
	r := verifyRouter(&stubPaymentService{})

	w, resp := postVerify(t, r, map[string]any{"action": "create", "amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}
