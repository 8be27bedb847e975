package models

// Meal is one feeding in a daily plan.
type Meal struct {
	MealTime string `json:"meal_time"`
	Food     string `json:"food"`
	PortionG int    `json:"portion_g"`
	Notes    string `json:"notes,omitempty"`
}

// MealPlan is a deterministic daily feeding plan computed from a pet's
// species, age, weight and breed against the guideline tables.
type MealPlan struct {
	PetID         string   `json:"petId"`
	PetName       string   `json:"petName"`
	Species       string   `json:"species"`
	Breed         string   `json:"breed,omitempty"`
	Age           int      `json:"age"`
	Weight        float64  `json:"weight"`
	DailyCalories int      `json:"dailyCalories"`
	Meals         []Meal   `json:"meals"`
	Nutrients     []string `json:"nutrients"`
	AvoidFoods    []string `json:"avoidFoods"`
	Hydration     string   `json:"hydration"`
	BreedNotes    string   `json:"breedNotes,omitempty"`
}
