package directoryRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when a hospital or doctor does not exist.
var ErrNotFound = errors.New("directory entry not found")

// DirectoryRepository reads the hospital/doctor directory.
type DirectoryRepository interface {
	// ListHospitals returns all hospitals, highest rated first.
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	GetHospitalByID(ctx context.Context, hospitalID string) (*models.Hospital, error)
	// ListDoctorsByHospital returns the hospital's doctors that are
	// currently accepting appointments.
	ListDoctorsByHospital(ctx context.Context, hospitalID string) ([]models.Doctor, error)
	GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error)
}
