package directory

import (
	"context"
	"time"

	"medibook/models"
)

// Service exposes the hospital/doctor directory to patients.
type Service interface {
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	GetHospital(ctx context.Context, hospitalID string) (*models.Hospital, error)
	ListDoctors(ctx context.Context, hospitalID string) ([]models.Doctor, error)
	// ListSlots returns the doctor's bookable consultation windows starting
	// from the given day.
	ListSlots(ctx context.Context, doctorID string, from time.Time) ([]models.Slot, error)
}
