package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	directoryRepo "medibook/database/repository/directory"
	"medibook/models"
)

// ErrNotFound is returned when a hospital or doctor does not exist.
var ErrNotFound = errors.New("not found")

// visitingHours are the consultation windows every doctor offers. Slots are
// derived, not stored: a doctor's calendar is the next few days crossed with
// these times.
var visitingHours = []string{
	"09:00 AM", "10:00 AM", "11:00 AM",
	"02:00 PM", "03:00 PM", "04:00 PM",
}

// slotHorizonDays is how many days ahead slots are offered.
const slotHorizonDays = 7

// DefaultDirectoryService implements Service.
type DefaultDirectoryService struct {
	Repo directoryRepo.DirectoryRepository
}

func (s *DefaultDirectoryService) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	hospitals, err := s.Repo.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (s *DefaultDirectoryService) GetHospital(ctx context.Context, hospitalID string) (*models.Hospital, error) {
	h, err := s.Repo.GetHospitalByID(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch hospital %s: %w", hospitalID, err)
	}
	return h, nil
}

func (s *DefaultDirectoryService) ListDoctors(ctx context.Context, hospitalID string) ([]models.Doctor, error) {
	if _, err := s.GetHospital(ctx, hospitalID); err != nil {
		return nil, err
	}
	doctors, err := s.Repo.ListDoctorsByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors for hospital %s: %w", hospitalID, err)
	}
	return doctors, nil
}

// ListSlots generates the doctor's consultation slots for the coming days.
// Slot ids are deterministic so a slot can be referenced across requests.
func (s *DefaultDirectoryService) ListSlots(ctx context.Context, doctorID string, from time.Time) ([]models.Slot, error) {
	d, err := s.Repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch doctor %s: %w", doctorID, err)
	}

	var slots []models.Slot
	for day := 0; day < slotHorizonDays; day++ {
		date := from.AddDate(0, 0, day)
		for i, hour := range visitingHours {
			// Today's calendar starts at the next visiting hour; a window
			// that has already begun is not bookable.
			if day == 0 && visitingHourStarted(hour, from) {
				continue
			}
			slots = append(slots, models.Slot{
				ID:        fmt.Sprintf("%s-%s-%d", d.ID, date.Format("20060102"), i),
				DoctorID:  d.ID,
				Date:      date.Format("Jan 2, 2006"),
				Time:      hour,
				Available: d.Available,
			})
		}
	}
	return slots, nil
}

// visitingHourStarted reports whether the visiting hour's clock time is at or
// before t's clock time. Unparseable hours are kept rather than dropped.
func visitingHourStarted(hour string, t time.Time) bool {
	ht, err := time.Parse("03:04 PM", hour)
	if err != nil {
		return false
	}
	if ht.Hour() != t.Hour() {
		return ht.Hour() < t.Hour()
	}
	return ht.Minute() <= t.Minute()
}
