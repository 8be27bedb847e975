package models

import "time"

// Expense is a row in expenses, owned transitively through its pet.
type Expense struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseWithPet is an expense joined with its pet's display name.
type ExpenseWithPet struct {
	Expense
	PetName string `json:"pet_name"`
}
