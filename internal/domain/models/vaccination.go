package models

import "time"

// Vaccination is a row in vaccinations, owned transitively through its pet.
type Vaccination struct {
	ID           string     `json:"id"`
	PetID        string     `json:"pet_id"`
	VaccineName  string     `json:"vaccine_name"`
	GivenDate    time.Time  `json:"given_date"`
	NextDueDate  *time.Time `json:"next_due_date,omitempty"`
	ReminderSent bool       `json:"reminder_sent"`
	CreatedAt    time.Time  `json:"created_at"`
}

// VaccinationWithPet is a vaccination joined with its pet's display name.
type VaccinationWithPet struct {
	Vaccination
	PetName string `json:"pet_name"`
}

// DueVaccination is what the reminder sweep needs for one due row:
// the vaccine plus the owning user's contact details.
type DueVaccination struct {
	VaccinationID string
	VaccineName   string
	NextDueDate   time.Time
	OwnerName     string
	OwnerEmail    string
}
