package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services/payment"

	"go.uber.org/zap"
)

// Step identifies a screen in the booking flow.
type Step int

const (
	StepDashboard Step = iota
	StepSearch
	StepHospitalDetails
	StepSlotSelection
	StepPayment
	StepPaymentStatus
)

func (s Step) String() string {
	switch s {
	case StepDashboard:
		return "dashboard"
	case StepSearch:
		return "search"
	case StepHospitalDetails:
		return "hospitalDetails"
	case StepSlotSelection:
		return "slotSelection"
	case StepPayment:
		return "payment"
	case StepPaymentStatus:
		return "paymentStatus"
	default:
		return "unknown"
	}
}

// Outcome is the result shown on the payment status screen.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeSuccess: payment settled and the booking was recorded.
	OutcomeSuccess
	// OutcomeDeclined: the rail rejected the payment; no booking exists.
	OutcomeDeclined
	// OutcomeBookingFailed: the payment settled but the booking could not
	// be recorded. Requires reconciliation; distinct from a decline.
	OutcomeBookingFailed
)

// ErrInvalidTransition is returned when a step change is requested out of
// order.
var ErrInvalidTransition = errors.New("invalid flow transition")

// ErrIncompleteSelection is returned when a step's prerequisite selection is
// missing.
var ErrIncompleteSelection = errors.New("selection incomplete")

// Selection is the transient chain of in-progress choices. Clearing it is
// atomic: Reset replaces the whole struct.
type Selection struct {
	Hospital      *models.Hospital
	Doctor        *models.Doctor
	Slot          *models.Slot
	TransactionID string
	Booking       *models.Booking
}

// Flow sequences hospital selection, doctor selection, slot selection,
// payment and the status screen. Forward transitions are only possible when
// the previous step's selection exists; persisting the booking after a
// successful payment is part of the transition, not optional wiring.
type Flow struct {
	payments PaymentAPI
	bookings BookingAPI
	interval time.Duration
	logger   *zap.Logger

	step    Step
	sel     Selection
	outcome Outcome
	poller  *Poller
}

// NewFlow builds a flow starting at the dashboard.
func NewFlow(payments PaymentAPI, bookings BookingAPI, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		payments: payments,
		bookings: bookings,
		interval: DefaultPollInterval,
		logger:   logger,
		step:     StepDashboard,
	}
}

// SetPollInterval overrides the probe cadence used during payment.
func (f *Flow) SetPollInterval(d time.Duration) {
	if d > 0 {
		f.interval = d
	}
}

// Step returns the current screen.
func (f *Flow) Step() Step { return f.step }

// Selection returns the current selection context.
func (f *Flow) Selection() Selection { return f.sel }

// Outcome returns the payment status screen's result.
func (f *Flow) Outcome() Outcome { return f.outcome }

// OpenSearch moves from the dashboard to hospital search.
func (f *Flow) OpenSearch() error {
	if f.step != StepDashboard {
		return fmt.Errorf("%w: cannot open search from %s", ErrInvalidTransition, f.step)
	}
	f.step = StepSearch
	return nil
}

// SelectHospital records the chosen hospital and opens its details.
func (f *Flow) SelectHospital(h models.Hospital) error {
	if f.step != StepSearch {
		return fmt.Errorf("%w: cannot select hospital from %s", ErrInvalidTransition, f.step)
	}
	f.sel.Hospital = &h
	f.step = StepHospitalDetails
	return nil
}

// SelectDoctor records the chosen doctor and opens slot selection.
func (f *Flow) SelectDoctor(d models.Doctor) error {
	if f.step != StepHospitalDetails {
		return fmt.Errorf("%w: cannot select doctor from %s", ErrInvalidTransition, f.step)
	}
	if f.sel.Hospital == nil {
		return fmt.Errorf("%w: no hospital selected", ErrIncompleteSelection)
	}
	if d.HospitalID != f.sel.Hospital.ID {
		return fmt.Errorf("%w: doctor %s does not belong to hospital %s", ErrIncompleteSelection, d.ID, f.sel.Hospital.ID)
	}
	f.sel.Doctor = &d
	f.step = StepSlotSelection
	return nil
}

// SelectSlot records the chosen slot and opens the payment screen.
func (f *Flow) SelectSlot(s models.Slot) error {
	if f.step != StepSlotSelection {
		return fmt.Errorf("%w: cannot select slot from %s", ErrInvalidTransition, f.step)
	}
	if f.sel.Doctor == nil {
		return fmt.Errorf("%w: no doctor selected", ErrIncompleteSelection)
	}
	f.sel.Slot = &s
	f.step = StepPayment
	return nil
}

// QRLink returns the UPI deep link and rendered QR image URL for the
// current selection.
func (f *Flow) QRLink() (link, imageURL string, err error) {
	if f.step != StepPayment {
		return "", "", fmt.Errorf("%w: no payment in progress", ErrInvalidTransition)
	}
	in, err := f.intentInput()
	if err != nil {
		return "", "", err
	}
	link = payment.BuildUPILink(in.UPIID, in.HospitalName, in.Amount, "Consultation with "+in.DoctorName)
	return link, payment.QRImageURL(link), nil
}

// Pay creates a payment intent and polls until the transaction settles or
// ctx is cancelled. On success the booking is persisted before the status
// screen is reachable. Cancelling ctx abandons the attempt: the flow stays
// on the payment screen with no outcome and the poller goes inert.
func (f *Flow) Pay(ctx context.Context) (Outcome, error) {
	if f.step != StepPayment {
		return OutcomeNone, fmt.Errorf("%w: cannot pay from %s", ErrInvalidTransition, f.step)
	}
	in, err := f.intentInput()
	if err != nil {
		return OutcomeNone, err
	}

	// Each attempt is a brand-new intent; a retry never reuses an old
	// transaction id.
	f.poller = NewPoller(f.payments, f.interval, f.logger)
	if err := f.poller.Start(ctx, in); err != nil {
		return OutcomeNone, fmt.Errorf("payment could not be started: %w", err)
	}
	f.sel.TransactionID = f.poller.TransactionID()

	select {
	case <-ctx.Done():
		f.poller.Cancel()
		return OutcomeNone, ctx.Err()
	case state := <-f.poller.Done():
		f.step = StepPaymentStatus
		if state != StateSuccess {
			f.outcome = OutcomeDeclined
			return f.outcome, nil
		}
		if err := f.persistBooking(ctx); err != nil {
			f.logger.Error("payment captured but booking was not recorded",
				zap.String("transactionID", f.sel.TransactionID), zap.Error(err))
			f.outcome = OutcomeBookingFailed
			return f.outcome, nil
		}
		f.outcome = OutcomeSuccess
		return f.outcome, nil
	}
}

// persistBooking writes the booking for the settled transaction.
func (f *Flow) persistBooking(ctx context.Context) error {
	b, err := f.bookings.CreateBooking(ctx, models.BookingInput{
		HospitalID:     f.sel.Hospital.ID,
		DoctorID:       f.sel.Doctor.ID,
		SlotID:         f.sel.Slot.ID,
		PaymentID:      f.sel.TransactionID,
		HospitalName:   f.sel.Hospital.Name,
		DoctorName:     f.sel.Doctor.Name,
		Specialization: f.sel.Doctor.Specialization,
		SlotDate:       f.sel.Slot.Date,
		SlotTime:       f.sel.Slot.Time,
		Fee:            f.sel.Doctor.Fee,
	})
	if err != nil {
		return err
	}
	f.sel.Booking = b
	return nil
}

// Back returns to the immediately preceding screen without clearing the
// current selection. The status screen has no back; it only continues.
func (f *Flow) Back() error {
	switch f.step {
	case StepSearch:
		f.step = StepDashboard
	case StepHospitalDetails:
		f.step = StepSearch
	case StepSlotSelection:
		f.step = StepHospitalDetails
	case StepPayment:
		f.step = StepSlotSelection
	default:
		return fmt.Errorf("%w: cannot go back from %s", ErrInvalidTransition, f.step)
	}
	return nil
}

// Continue leaves the payment status screen and resets the whole selection
// context atomically.
func (f *Flow) Continue() error {
	if f.step != StepPaymentStatus {
		return fmt.Errorf("%w: cannot continue from %s", ErrInvalidTransition, f.step)
	}
	f.Reset()
	return nil
}

// Reset clears every selection and returns to the dashboard.
func (f *Flow) Reset() {
	if f.poller != nil {
		f.poller.Cancel()
		f.poller = nil
	}
	f.sel = Selection{}
	f.outcome = OutcomeNone
	f.step = StepDashboard
}

// intentInput derives the payment payload from the selection chain.
func (f *Flow) intentInput() (payment.CreateIntentInput, error) {
	if f.sel.Hospital == nil || f.sel.Doctor == nil || f.sel.Slot == nil {
		return payment.CreateIntentInput{}, fmt.Errorf("%w: hospital, doctor and slot required", ErrIncompleteSelection)
	}
	return payment.CreateIntentInput{
		DoctorName:   f.sel.Doctor.Name,
		HospitalName: f.sel.Hospital.Name,
		Amount:       f.sel.Doctor.Fee,
		SlotDate:     f.sel.Slot.Date,
		SlotTime:     f.sel.Slot.Time,
		UPIID:        f.sel.Hospital.UPIID,
	}, nil
}
