package models

import "time"

// BookingStatus is the stored state of an appointment.
type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking represents a confirmed appointment record. Display fields are
// denormalized from the directory at booking time so the record stays
// readable even if the hospital or doctor entry later changes.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	UserID         string        `bson:"user_id" json:"user_id"`
	HospitalID     string        `bson:"hospital_id" json:"hospital_id"`
	DoctorID       string        `bson:"doctor_id" json:"doctor_id"`
	SlotID         string        `bson:"slot_id,omitempty" json:"slot_id,omitempty"`
	PaymentID      string        `bson:"payment_id,omitempty" json:"payment_id,omitempty"` // Transaction reference
	HospitalName   string        `bson:"hospital_name" json:"hospital_name"`
	DoctorName     string        `bson:"doctor_name" json:"doctor_name"`
	Specialization string        `bson:"specialization" json:"specialization"`
	SlotDate       string        `bson:"slot_date" json:"slot_date"` // "Jan 2, 2006" or "2006-01-02"
	SlotTime       string        `bson:"slot_time" json:"slot_time"`
	Fee            float64       `bson:"fee" json:"fee"`
	Status         BookingStatus `bson:"status" json:"status"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookingInput holds everything needed to persist a confirmed appointment.
type BookingInput struct {
	HospitalID     string  `json:"hospital_id"`
	DoctorID       string  `json:"doctor_id"`
	SlotID         string  `json:"slot_id,omitempty"`
	PaymentID      string  `json:"payment_id,omitempty"`
	HospitalName   string  `json:"hospital_name"`
	DoctorName     string  `json:"doctor_name"`
	Specialization string  `json:"specialization"`
	SlotDate       string  `json:"slot_date"`
	SlotTime       string  `json:"slot_time"`
	Fee            float64 `json:"fee"`
}

// BookingList is a user's bookings split into upcoming and past/cancelled.
// The split is recomputed on every read; it is never stored.
type BookingList struct {
	Current []Booking `json:"current"`
	Recent  []Booking `json:"recent"`
}
