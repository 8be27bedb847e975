package models

import "time"

// Pet is a row in pets. The user_id column is the direct ownership
// edge for pets and the transitive edge for every pet subresource.
type Pet struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Species        string     `json:"species"`
	Breed          string     `json:"breed,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	DOB            *time.Time `json:"dob,omitempty"`
	Weight         *float64   `json:"weight,omitempty"`
	MedicalHistory string     `json:"medical_history,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
