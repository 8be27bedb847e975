package models

import "time"

// Activity types the summary endpoint counts individually.
const (
	ActivityWalk       = "walk"
	ActivityFeeding    = "feeding"
	ActivityPlay       = "play"
	ActivityMedication = "medication"
)

// Activity is a row in activities, owned transitively through its pet.
type Activity struct {
	ID       string    `json:"id"`
	PetID    string    `json:"pet_id"`
	Type     string    `json:"type"`
	Duration *int      `json:"duration,omitempty"` // minutes
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}

// ActivitySummary aggregates a pet's activities over a period.
type ActivitySummary struct {
	TotalActivities int `json:"totalActivities"`
	Walks           int `json:"walks"`
	Feeding         int `json:"feeding"`
	Play            int `json:"play"`
	Medication      int `json:"medication"`
	TotalDuration   int `json:"totalDuration"`
}

// ActivityReport is the summary endpoint's response shape.
type ActivityReport struct {
	Period  string          `json:"period"` // weekly or monthly
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Summary ActivitySummary `json:"summary"`
}
