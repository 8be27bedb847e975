package models

import "time"

// HealthLog is a row in health_logs, owned transitively through its pet.
type HealthLog struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Weight      *float64  `json:"weight,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Symptoms    string    `json:"symptoms,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Date        time.Time `json:"date"`
}

// WeightPoint is one sample of a pet's weight trend.
type WeightPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}
