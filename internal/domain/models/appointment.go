package models

import "time"

// Appointment statuses. Free-form beyond these is rejected at validation.
const (
	AppointmentUpcoming  = "upcoming"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a row in vet_appointments, owned transitively through its pet.
type Appointment struct {
	ID              string     `json:"id"`
	PetID           string     `json:"pet_id"`
	VetName         string     `json:"vet_name,omitempty"`
	ClinicName      string     `json:"clinic_name,omitempty"`
	AppointmentDate time.Time  `json:"appointment_date"`
	Purpose         string     `json:"purpose,omitempty"`
	ReminderDate    *time.Time `json:"reminder_date,omitempty"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AppointmentWithPet is an appointment joined with its pet's display name.
type AppointmentWithPet struct {
	Appointment
	PetName string `json:"pet_name"`
}
