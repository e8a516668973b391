package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "medibook/database/repository/booking"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	PaymentSvc payment.Service
	NotifySvc  notification.Service
	Logger     *zap.Logger
}

// CreateBooking persists a confirmed appointment. A referenced payment must
// be in status success; a pending or failed transaction never yields a
// booking row.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, in models.BookingInput) (*models.Booking, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidBooking)
	}
	if in.HospitalID == "" || in.DoctorID == "" {
		return nil, fmt.Errorf("%w: hospital and doctor required", ErrInvalidBooking)
	}
	if in.SlotDate == "" || in.SlotTime == "" {
		return nil, fmt.Errorf("%w: slot date and time required", ErrInvalidBooking)
	}

	if in.PaymentID != "" {
		p, err := s.PaymentSvc.CheckStatus(ctx, in.PaymentID)
		if err != nil {
			if errors.Is(err, payment.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown transaction %s", ErrPaymentNotSettled, in.PaymentID)
			}
			return nil, fmt.Errorf("failed to verify payment %s: %w", in.PaymentID, err)
		}
		if p.Status != models.PaymentSuccess {
			return nil, fmt.Errorf("%w: transaction %s is %s", ErrPaymentNotSettled, in.PaymentID, p.Status)
		}
	}

	now := time.Now()
	b := &models.Booking{
		ID:             uuid.New().String(),
		UserID:         userID,
		HospitalID:     in.HospitalID,
		DoctorID:       in.DoctorID,
		SlotID:         in.SlotID,
		PaymentID:      in.PaymentID,
		HospitalName:   in.HospitalName,
		DoctorName:     in.DoctorName,
		Specialization: in.Specialization,
		SlotDate:       in.SlotDate,
		SlotTime:       in.SlotTime,
		Fee:            in.Fee,
		Status:         models.BookingUpcoming,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.Logger.Info("booking confirmed",
		zap.String("bookingID", b.ID),
		zap.String("userID", userID),
		zap.String("doctor", b.DoctorName))

	s.notify(ctx, userID, "Appointment confirmed",
		fmt.Sprintf("Your appointment with %s at %s on %s, %s is confirmed.",
			b.DoctorName, b.HospitalName, b.SlotDate, b.SlotTime),
		map[string]string{"bookingId": b.ID, "type": "booking_confirmed"})

	return b, nil
}

// ListBookings returns the user's bookings partitioned by the current date.
func (s *DefaultBookingService) ListBookings(ctx context.Context, userID string, now time.Time) (*models.BookingList, error) {
	bookings, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	current, recent := Partition(bookings, now)
	return &models.BookingList{Current: current, Recent: recent}, nil
}

// CancelBooking soft-cancels an appointment. Repeated cancels are no-ops.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if b.UserID != userID {
		return ErrNotOwner
	}
	if b.Status == models.BookingCancelled {
		return nil
	}

	if err := s.Repo.SetStatus(ctx, bookingID, models.BookingCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}

	s.Logger.Info("booking cancelled",
		zap.String("bookingID", bookingID),
		zap.String("userID", userID))

	s.notify(ctx, userID, "Appointment cancelled",
		fmt.Sprintf("Your appointment with %s on %s has been cancelled.", b.DoctorName, b.SlotDate),
		map[string]string{"bookingId": bookingID, "type": "booking_cancelled"})

	return nil
}

// notify sends a best-effort push; delivery failures never affect bookings.
func (s *DefaultBookingService) notify(ctx context.Context, userID, title, body string, data map[string]string) {
	if s.NotifySvc == nil {
		return
	}
	if err := s.NotifySvc.SendUserPushNotification(ctx, userID, title, body, data); err != nil {
		s.Logger.Warn("push notification failed", zap.String("userID", userID), zap.Error(err))
	}
}
