// Package client implements the patient-side booking flow: the screen state
// machine that carries a user from hospital discovery to a confirmed
// appointment, and the payment status poller it drives.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"medibook/models"
	"medibook/services/payment"
)

// PaymentAPI creates payment intents and probes their status.
type PaymentAPI interface {
	CreateIntent(ctx context.Context, in payment.CreateIntentInput) (string, error)
	CheckStatus(ctx context.Context, transactionID string) (models.PaymentStatus, error)
}

// BookingAPI persists confirmed appointments.
type BookingAPI interface {
	CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error)
}

// APIClient talks to the MediBook server over HTTP and implements both
// PaymentAPI and BookingAPI.
type APIClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewAPIClient builds a client for the given server with a bearer token.
func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: http.DefaultClient,
	}
}

type verifyRequest struct {
	Action        string  `json:"action"`
	TransactionID string  `json:"transactionId,omitempty"`
	DoctorName    string  `json:"doctorName,omitempty"`
	HospitalName  string  `json:"hospitalName,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	SlotDate      string  `json:"slotDate,omitempty"`
	SlotTime      string  `json:"slotTime,omitempty"`
	UPIID         string  `json:"upiId,omitempty"`
}

type verifyResponse struct {
	Success       bool                 `json:"success"`
	TransactionID string               `json:"transactionId,omitempty"`
	Status        models.PaymentStatus `json:"status,omitempty"`
	Payment       *models.Payment      `json:"payment,omitempty"`
	Error         string               `json:"error,omitempty"`
}

// CreateIntent asks the server for a new transaction id.
func (c *APIClient) CreateIntent(ctx context.Context, in payment.CreateIntentInput) (string, error) {
	resp, status, err := c.verify(ctx, verifyRequest{
		Action:       "create",
		DoctorName:   in.DoctorName,
		HospitalName: in.HospitalName,
		Amount:       in.Amount,
		SlotDate:     in.SlotDate,
		SlotTime:     in.SlotTime,
		UPIID:        in.UPIID,
	})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK || !resp.Success {
		return "", fmt.Errorf("payment creation failed: %s", resp.Error)
	}
	return resp.TransactionID, nil
}

// CheckStatus probes the server for the transaction's persisted status.
func (c *APIClient) CheckStatus(ctx context.Context, transactionID string) (models.PaymentStatus, error) {
	resp, status, err := c.verify(ctx, verifyRequest{Action: "check", TransactionID: transactionID})
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", payment.ErrNotFound
	}
	if status != http.StatusOK || !resp.Success {
		return "", fmt.Errorf("payment status check failed: %s", resp.Error)
	}
	return resp.Status, nil
}

func (c *APIClient) verify(ctx context.Context, req verifyRequest) (*verifyResponse, int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal verify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/payments/verify", bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build verify request: %w", err)
	}
	c.setHeaders(httpReq)

	httpResp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("verify request failed: %w", err)
	}
	defer httpResp.Body.Close()

	var resp verifyResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("failed to decode verify response: %w", err)
	}
	return &resp, httpResp.StatusCode, nil
}

// CreateBooking persists a confirmed appointment on the server.
func (c *APIClient) CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build booking request: %w", err)
	}
	c.setHeaders(httpReq)

	httpResp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("booking request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusCreated && httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("booking request rejected with status %d", httpResp.StatusCode)
	}

	var b models.Booking
	if err := json.NewDecoder(httpResp.Body).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode booking response: %w", err)
	}
	return &b, nil
}

func (c *APIClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}
