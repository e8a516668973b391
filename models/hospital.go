package models

// Hospital is a directory entry patients can book against.
type Hospital struct {
	ID           string   `bson:"id" json:"id"`
	Name         string   `bson:"name" json:"name"`
	Location     string   `bson:"location,omitempty" json:"location,omitempty"`
	Status       string   `bson:"status,omitempty" json:"status,omitempty"` // e.g. "open", "closed"
	Rating       float64  `bson:"rating" json:"rating"`
	Image        string   `bson:"image,omitempty" json:"image,omitempty"`
	Specialties  []string `bson:"specialties,omitempty" json:"specialties,omitempty"`
	UPIID        string   `bson:"upi_id,omitempty" json:"upi_id,omitempty"`
	MobileNumber string   `bson:"mobile_number" json:"mobile_number"`
	HospitalCode string   `bson:"hospital_code" json:"hospital_code"`
}

// Doctor belongs to exactly one hospital.
type Doctor struct {
	ID             string  `bson:"id" json:"id"`
	HospitalID     string  `bson:"hospital_id" json:"hospital_id"`
	Name           string  `bson:"name" json:"name"`
	Specialization string  `bson:"specialization" json:"specialization"`
	Degree         string  `bson:"degree,omitempty" json:"degree,omitempty"`
	Fee            float64 `bson:"fee" json:"fee"`
	Rating         float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Reviews        int     `bson:"reviews,omitempty" json:"reviews,omitempty"`
	Available      bool    `bson:"available" json:"available"`
}

// Slot is a bookable consultation window for a doctor.
type Slot struct {
	ID        string `json:"id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"` // "Jan 2, 2006"
	Time      string `json:"time"` // "10:00 AM"
	Available bool   `json:"available"`
}
