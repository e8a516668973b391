package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"medibook/models"
	"medibook/services/payment"

	"go.uber.org/zap"
)

// PollerState is the payment screen's state.
type PollerState int

const (
	// StateScanning shows the QR and waits for the rail to settle.
	StateScanning PollerState = iota
	StateSuccess
	StateFailed
)

func (s PollerState) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultPollInterval is the probe cadence while scanning.
const DefaultPollInterval = 3 * time.Second

// ErrAlreadyStarted is returned when Start is called on a running poller.
var ErrAlreadyStarted = errors.New("poller already started")

// Poller creates one payment intent and probes its status on a fixed
// interval until a terminal state is observed or the user cancels. Probes
// are serialized by the ticker; there is never more than one interval per
// transaction, and the ticker is stopped on every exit path.
type Poller struct {
	api      PaymentAPI
	interval time.Duration
	logger   *zap.Logger

	mu            sync.Mutex
	transactionID string
	state         PollerState
	started       bool
	cancel        context.CancelFunc
	done          chan PollerState
}

// NewPoller builds a poller. A zero interval falls back to the default.
func NewPoller(api PaymentAPI, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		api:      api,
		interval: interval,
		logger:   logger,
		state:    StateScanning,
		done:     make(chan PollerState, 1),
	}
}

// Start creates the payment intent and begins polling. When intent creation
// fails, the poller stays in scanning with no transaction id and polling
// never starts; the user can still cancel out of the screen.
func (p *Poller) Start(ctx context.Context, in payment.CreateIntentInput) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}

	txnID, err := p.api.CreateIntent(ctx, in)
	if err != nil {
		p.logger.Warn("payment intent creation failed", zap.Error(err))
		return err
	}

	pollCtx, cancel := context.WithCancel(ctx)
	p.transactionID = txnID
	p.cancel = cancel
	p.started = true

	go p.poll(pollCtx, txnID)
	return nil
}

func (p *Poller) poll(ctx context.Context, transactionID string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// User cancelled or the screen went away; abandonment is not
			// a terminal state.
			return
		case <-ticker.C:
			status, err := p.api.CheckStatus(ctx, transactionID)
			if err != nil {
				if payment.IsNotFound(err) {
					p.logger.Error("transaction unknown to the server, stopping",
						zap.String("transactionID", transactionID))
					p.finish(StateFailed)
					return
				}
				// Transient probe failure; keep the interval running.
				p.logger.Warn("status probe failed, will retry",
					zap.String("transactionID", transactionID), zap.Error(err))
				continue
			}

			switch status {
			case models.PaymentSuccess:
				p.finish(StateSuccess)
				return
			case models.PaymentFailed:
				p.finish(StateFailed)
				return
			}
			// Still pending; next tick probes again.
		}
	}
}

func (p *Poller) finish(state PollerState) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
	p.done <- state
}

// Cancel deterministically stops future polling. Safe to call at any time,
// including before Start or after a terminal state.
func (p *Poller) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Done delivers the terminal state exactly once.
func (p *Poller) Done() <-chan PollerState {
	return p.done
}

// State returns the current state.
func (p *Poller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// TransactionID returns the id of the in-flight transaction, empty until
// intent creation succeeds.
func (p *Poller) TransactionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transactionID
}
