package payment

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	paymentRepo "medibook/database/repository/payment"
	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memPaymentRepo is an in-memory PaymentRepository. MarkSettled applies the
// same pending-only condition as the Mongo implementation.
type memPaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *memPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.TransactionID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[transactionID]
	if !ok {
		return nil, paymentRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) MarkSettled(ctx context.Context, transactionID string, status models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[transactionID]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	if p.Status != models.PaymentPending {
		return paymentRepo.ErrAlreadySettled
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memPaymentRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if p.Status == models.PaymentPending && p.CreatedAt.Before(cutoff) {
			out = append(out, *p)
		}
	}
	return out, nil
}

// recordingScheduler captures scheduled settlements.
type recordingScheduler struct {
	mu      sync.Mutex
	calls   []string
	delays  []time.Duration
	failing bool
}

func (s *recordingScheduler) ScheduleSettlement(ctx context.Context, transactionID string, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("queue unavailable")
	}
	s.calls = append(s.calls, transactionID)
	s.delays = append(s.delays, delay)
	return nil
}

// stubVerifier returns a fixed verdict and counts invocations.
type stubVerifier struct {
	verdict models.PaymentStatus
	err     error
	calls   int
}

func (v *stubVerifier) Verify(ctx context.Context, p *models.Payment) (models.PaymentStatus, error) {
	v.calls++
	return v.verdict, v.err
}

func newTestService(repo *memPaymentRepo, sched *recordingScheduler, v Verifier) *DefaultPaymentService {
	return &DefaultPaymentService{
		Repo:        repo,
		Scheduler:   sched,
		Verifier:    v,
		SettleDelay: 15 * time.Second,
		Logger:      zap.NewNop(),
	}
}

func validIntent() CreateIntentInput {
	return CreateIntentInput{
		DoctorName:   "Dr. Sarah Johnson",
		HospitalName: "City Hospital",
		Amount:       500,
		SlotDate:     "Jan 2, 2026",
		SlotTime:     "10:00 AM",
		UPIID:        "cityhospital@upi",
	}
}

func TestNewTransactionID(t *testing.T) {
	re := regexp.MustCompile(`^TXN\d{13}[A-Z0-9]{9}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTransactionID()
		assert.Regexp(t, re, id)
		assert.False(t, seen[id], "transaction id %s repeated", id)
		seen[id] = true
	}
}

func TestCreateIntent(t *testing.T) {
	t.Run("persists a pending transaction and schedules settlement", func(t *testing.T) {
		repo := newMemPaymentRepo()
		sched := &recordingScheduler{}
		svc := newTestService(repo, sched, &stubVerifier{verdict: models.PaymentSuccess})

		p, err := svc.CreateIntent(context.Background(), validIntent())
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, p.Status)
		assert.NotEmpty(t, p.TransactionID)

		stored, err := repo.GetByTransactionID(context.Background(), p.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, stored.Status)

		require.Len(t, sched.calls, 1)
		assert.Equal(t, p.TransactionID, sched.calls[0])
		assert.Equal(t, 15*time.Second, sched.delays[0])
	})

	t.Run("scheduling failure does not fail creation", func(t *testing.T) {
		repo := newMemPaymentRepo()
		sched := &recordingScheduler{failing: true}
		svc := newTestService(repo, sched, &stubVerifier{verdict: models.PaymentSuccess})

		p, err := svc.CreateIntent(context.Background(), validIntent())
		require.NoError(t, err)

		stored, err := repo.GetByTransactionID(context.Background(), p.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, stored.Status)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := newTestService(newMemPaymentRepo(), &recordingScheduler{}, &stubVerifier{})

		cases := []struct {
			name   string
			mutate func(*CreateIntentInput)
		}{
			{"zero amount", func(in *CreateIntentInput) { in.Amount = 0 }},
			{"negative amount", func(in *CreateIntentInput) { in.Amount = -1 }},
			{"missing doctor", func(in *CreateIntentInput) { in.DoctorName = "" }},
			{"missing hospital", func(in *CreateIntentInput) { in.HospitalName = "" }},
			{"missing upi id", func(in *CreateIntentInput) { in.UPIID = "" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := validIntent()
				tc.mutate(&in)
				_, err := svc.CreateIntent(context.Background(), in)
				assert.ErrorIs(t, err, ErrInvalidIntent)
			})
		}
	})
}

func TestCheckStatus(t *testing.T) {
	t.Run("maps a missing transaction to ErrNotFound", func(t *testing.T) {
		svc := newTestService(newMemPaymentRepo(), &recordingScheduler{}, &stubVerifier{})

		_, err := svc.CheckStatus(context.Background(), "TXN0000000000000AAAAAAAAA")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns the stored payment", func(t *testing.T) {
		repo := newMemPaymentRepo()
		svc := newTestService(repo, &recordingScheduler{}, &stubVerifier{})

		created, err := svc.CreateIntent(context.Background(), validIntent())
		require.NoError(t, err)

		p, err := svc.CheckStatus(context.Background(), created.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, created.TransactionID, p.TransactionID)
		assert.Equal(t, models.PaymentPending, p.Status)
	})
}

func TestSettle(t *testing.T) {
	t.Run("records the verifier's success verdict", func(t *testing.T) {
		repo := newMemPaymentRepo()
		v := &stubVerifier{verdict: models.PaymentSuccess}
		svc := newTestService(repo, &recordingScheduler{}, v)

		p, err := svc.CreateIntent(context.Background(), validIntent())
		require.NoError(t, err)

		require.NoError(t, svc.Settle(context.Background(), p.TransactionID))

		stored, err := repo.GetByTransactionID(context.Background(), p.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentSuccess, stored.Status)
	})

	t.Run("records the verifier's failure verdict", func(t *testing.T) {
		repo := newMemPaymentRepo()
		svc := newTestService(repo, &recordingScheduler{}, &stubVerifier{verdict: models.PaymentFailed})

		p, err := svc.CreateIntent(context.Background(), validIntent())
		require.NoError(t, err)

		require.NoError(t, svc.Settle(context.Background(), p.TransactionID))

		stored, _ := repo.GetByTransactionID(context.Background(), p.TransactionID)
		assert.Equal(t, models.PaymentFailed, stored.Status)
	})

	t.Run("a non-terminal verdict leaves the payment pending", func(t *testing.T) {
		repo := newMemPaymentRepo()
		svc := newTestService(repo, &recordingScheduler{}, &stubVerifier{verdict: models.PaymentPending})

		p, err := svc.CreateIntent(context.Background(), validIntent())
		require.NoError(t, err)

		require.NoError(t, svc.Settle(context.Background(), p.TransactionID))

		stored, _ := repo.GetByTransactionID(context.Background(), p.TransactionID)
		assert.Equal(t, models.PaymentPending, stored.Status)
	})

	t.Run("settling twice never overwrites the first verdict", func(t *testing.T) {
		repo := newMemPaymentRepo()
		v := &stubVerifier{verdict: models.PaymentSuccess}
		svc := newTestService(repo, &recordingScheduler{}, v)

		p, err := svc.CreateIntent(context.Background(), validIntent())
		require.NoError(t, err)
		require.NoError(t, svc.Settle(context.Background(), p.TransactionID))

		// Second settle with a contradicting verdict is a no-op.
		v.verdict = models.PaymentFailed
		require.NoError(t, svc.Settle(context.Background(), p.TransactionID))

		stored, _ := repo.GetByTransactionID(context.Background(), p.TransactionID)
		assert.Equal(t, models.PaymentSuccess, stored.Status)
		assert.Equal(t, 1, v.calls, "terminal payments must not be re-verified")
	})

	t.Run("unknown transaction returns ErrNotFound", func(t *testing.T) {
		svc := newTestService(newMemPaymentRepo(), &recordingScheduler{}, &stubVerifier{})
		err := svc.Settle(context.Background(), "TXNmissing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("verifier error keeps the payment pending", func(t *testing.T) {
		repo := newMemPaymentRepo()
		svc := newTestService(repo, &recordingScheduler{}, &stubVerifier{err: errors.New("gateway down")})

		p, err := svc.CreateIntent(context.Background(), validIntent())
		require.NoError(t, err)

		require.Error(t, svc.Settle(context.Background(), p.TransactionID))

		stored, _ := repo.GetByTransactionID(context.Background(), p.TransactionID)
		assert.Equal(t, models.PaymentPending, stored.Status)
	})
}

func TestSimulatedVerifier(t *testing.T) {
	t.Run("zero failure rate always succeeds", func(t *testing.T) {
		v := &SimulatedVerifier{}
		for i := 0; i < 50; i++ {
			status, err := v.Verify(context.Background(), &models.Payment{})
			require.NoError(t, err)
			assert.Equal(t, models.PaymentSuccess, status)
		}
	})

	t.Run("full failure rate always fails", func(t *testing.T) {
		v := &SimulatedVerifier{FailureRate: 1.0}
		for i := 0; i < 50; i++ {
			status, err := v.Verify(context.Background(), &models.Payment{})
			require.NoError(t, err)
			assert.Equal(t, models.PaymentFailed, status)
		}
	})
}
