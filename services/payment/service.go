package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	paymentRepo "medibook/database/repository/payment"
	"medibook/models"

	"go.uber.org/zap"
)

// SettlementScheduler enqueues the delayed settlement of a transaction.
// The queue is durable; a scheduled settlement survives process restarts.
type SettlementScheduler interface {
	ScheduleSettlement(ctx context.Context, transactionID string, delay time.Duration) error
}

// DefaultPaymentService implements Service.
type DefaultPaymentService struct {
	Repo        paymentRepo.PaymentRepository
	Scheduler   SettlementScheduler
	Verifier    Verifier
	SettleDelay time.Duration
	Logger      *zap.Logger
}

const txnAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTransactionID generates an identifier in the same shape the payment
// rail has always issued: "TXN" + unix millis + 9 random upper alnums.
func NewTransactionID() string {
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		sb.WriteByte(txnAlphabet[rand.Intn(len(txnAlphabet))])
	}
	return fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), sb.String())
}

// CreateIntent persists a new pending transaction and schedules settlement.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, in CreateIntentInput) (*models.Payment, error) {
	if err := validateIntent(in); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &models.Payment{
		TransactionID: NewTransactionID(),
		Status:        models.PaymentPending,
		Amount:        in.Amount,
		DoctorName:    in.DoctorName,
		HospitalName:  in.HospitalName,
		SlotDate:      in.SlotDate,
		SlotTime:      in.SlotTime,
		UPIID:         in.UPIID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	// Scheduling failure is not a creation failure: the reconciliation
	// sweep picks up any pending transaction whose task was lost.
	if err := s.Scheduler.ScheduleSettlement(ctx, p.TransactionID, s.SettleDelay); err != nil {
		s.Logger.Warn("failed to schedule settlement, sweep will recover it",
			zap.String("transactionID", p.TransactionID), zap.Error(err))
	}

	s.Logger.Info("payment intent created",
		zap.String("transactionID", p.TransactionID),
		zap.Float64("amount", p.Amount))
	return p, nil
}

// CheckStatus returns the persisted transaction for a probe.
func (s *DefaultPaymentService) CheckStatus(ctx context.Context, transactionID string) (*models.Payment, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction id required", ErrInvalidIntent)
	}
	p, err := s.Repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to check payment %s: %w", transactionID, err)
	}
	return p, nil
}

// Settle resolves a pending transaction through the verifier and records the
// terminal status. A transaction that already settled is left untouched.
func (s *DefaultPaymentService) Settle(ctx context.Context, transactionID string) error {
	p, err := s.Repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load payment %s for settlement: %w", transactionID, err)
	}
	if p.Status.Terminal() {
		return nil
	}

	status, err := s.Verifier.Verify(ctx, p)
	if err != nil {
		return fmt.Errorf("verifier failed for payment %s: %w", transactionID, err)
	}
	if !status.Terminal() {
		// Verifier says the rail hasn't decided yet; leave it pending and
		// let the sweep retry.
		return nil
	}

	if err := s.Repo.MarkSettled(ctx, transactionID, status); err != nil {
		if errors.Is(err, paymentRepo.ErrAlreadySettled) {
			return nil
		}
		return fmt.Errorf("failed to settle payment %s: %w", transactionID, err)
	}

	s.Logger.Info("payment settled",
		zap.String("transactionID", transactionID),
		zap.String("status", string(status)))
	return nil
}

func validateIntent(in CreateIntentInput) error {
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidIntent)
	}
	if in.DoctorName == "" || in.HospitalName == "" {
		return fmt.Errorf("%w: doctor and hospital names required", ErrInvalidIntent)
	}
	if in.UPIID == "" {
		return fmt.Errorf("%w: upi id required", ErrInvalidIntent)
	}
	return nil
}
