package models

import "time"

// PaymentStatus is the lifecycle state of a payment attempt.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Terminal reports whether no further status transition is permitted.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSuccess || s == PaymentFailed
}

// Payment represents a single payment attempt. The descriptive payload is
// immutable after creation; only Status and UpdatedAt change, exactly once,
// when the transaction settles.
type Payment struct {
	TransactionID string        `bson:"transaction_id" json:"transaction_id"`
	Status        PaymentStatus `bson:"status" json:"status"`
	Amount        float64       `bson:"amount" json:"amount"`
	DoctorName    string        `bson:"doctor_name" json:"doctor_name"`
	HospitalName  string        `bson:"hospital_name" json:"hospital_name"`
	SlotDate      string        `bson:"slot_date" json:"slot_date"`
	SlotTime      string        `bson:"slot_time" json:"slot_time"`
	UPIID         string        `bson:"upi_id" json:"upi_id"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}
