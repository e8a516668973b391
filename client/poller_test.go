package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medibook/models"
	"medibook/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAPI returns one scripted result per status probe, in order. The
// last script entry repeats once the script is exhausted.
type scriptedAPI struct {
	mu          sync.Mutex
	createErr   error
	script      []probeResult
	probeCalls  int
	createCalls int
}

type probeResult struct {
	status models.PaymentStatus
	err    error
}

func (a *scriptedAPI) CreateIntent(ctx context.Context, in payment.CreateIntentInput) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.createCalls++
	if a.createErr != nil {
		return "", a.createErr
	}
	return "TXN1750000000000ABCDEFGHI", nil
}

func (a *scriptedAPI) CheckStatus(ctx context.Context, transactionID string) (models.PaymentStatus, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := a.probeCalls
	a.probeCalls++
	if idx >= len(a.script) {
		idx = len(a.script) - 1
	}
	r := a.script[idx]
	return r.status, r.err
}

func (a *scriptedAPI) probes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.probeCalls
}

func (a *scriptedAPI) creates() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.createCalls
}

func intent() payment.CreateIntentInput {
	return payment.CreateIntentInput{
		DoctorName:   "Dr. Sarah Johnson",
		HospitalName: "City Hospital",
		Amount:       500,
		UPIID:        "cityhospital@upi",
	}
}

func waitDone(t *testing.T, p *Poller) PollerState {
	t.Helper()
	select {
	case state := <-p.Done():
		return state
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish in time")
		return StateScanning
	}
}

func TestPollerSuccess(t *testing.T) {
	api := &scriptedAPI{script: []probeResult{
		{status: models.PaymentPending},
		{status: models.PaymentPending},
		{status: models.PaymentSuccess},
	}}

	p := NewPoller(api, time.Millisecond, nil)
	require.NoError(t, p.Start(context.Background(), intent()))
	assert.Equal(t, "TXN1750000000000ABCDEFGHI", p.TransactionID())

	state := waitDone(t, p)
	assert.Equal(t, StateSuccess, state)
	assert.Equal(t, StateSuccess, p.State())
	// Two pending probes plus the terminal one, nothing after.
	assert.Equal(t, 3, api.probes())
}

func TestPollerFailure(t *testing.T) {
	api := &scriptedAPI{script: []probeResult{
		{status: models.PaymentPending},
		{status: models.PaymentFailed},
	}}

	p := NewPoller(api, time.Millisecond, nil)
	require.NoError(t, p.Start(context.Background(), intent()))

	assert.Equal(t, StateFailed, waitDone(t, p))
	assert.Equal(t, 2, api.probes())
}

func TestPollerTransientErrorKeepsPolling(t *testing.T) {
	api := &scriptedAPI{script: []probeResult{
		{err: errors.New("network blip")},
		{err: errors.New("another blip")},
		{status: models.PaymentSuccess},
	}}

	p := NewPoller(api, time.Millisecond, nil)
	require.NoError(t, p.Start(context.Background(), intent()))

	assert.Equal(t, StateSuccess, waitDone(t, p))
	assert.Equal(t, 3, api.probes())
}

func TestPollerUnknownTransactionIsFatal(t *testing.T) {
	api := &scriptedAPI{script: []probeResult{
		{err: payment.ErrNotFound},
	}}

	p := NewPoller(api, time.Millisecond, nil)
	require.NoError(t, p.Start(context.Background(), intent()))

	assert.Equal(t, StateFailed, waitDone(t, p))
	assert.Equal(t, 1, api.probes())
}

func TestPollerCreateFailure(t *testing.T) {
	api := &scriptedAPI{createErr: errors.New("server unavailable")}

	p := NewPoller(api, time.Millisecond, nil)
	err := p.Start(context.Background(), intent())
	require.Error(t, err)

	// No transaction, no polling; the screen stays on scanning.
	assert.Empty(t, p.TransactionID())
	assert.Equal(t, StateScanning, p.State())
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, api.probes())
}

func TestPollerCancel(t *testing.T) {
	api := &scriptedAPI{script: []probeResult{
		{status: models.PaymentPending},
	}}

	p := NewPoller(api, time.Millisecond, nil)
	require.NoError(t, p.Start(context.Background(), intent()))

	time.Sleep(5 * time.Millisecond)
	p.Cancel()

	probesAtCancel := api.probes()
	time.Sleep(10 * time.Millisecond)
	// At most one probe that was already in flight may land after cancel.
	assert.LessOrEqual(t, api.probes(), probesAtCancel+1)

	// Abandonment is not terminal: no state is delivered.
	select {
	case state := <-p.Done():
		t.Fatalf("unexpected terminal state %s after cancel", state)
	case <-time.After(20 * time.Millisecond):
	}
	assert.Equal(t, StateScanning, p.State())
}

func TestPollerStartTwice(t *testing.T) {
	api := &scriptedAPI{script: []probeResult{{status: models.PaymentPending}}}

	p := NewPoller(api, time.Millisecond, nil)
	require.NoError(t, p.Start(context.Background(), intent()))
	defer p.Cancel()

	assert.ErrorIs(t, p.Start(context.Background(), intent()), ErrAlreadyStarted)
	assert.Equal(t, 1, api.creates())
}
