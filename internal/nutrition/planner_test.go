package nutrition

import (
	"errors"
	"testing"
	"time"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
)

var planNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testPet(species, breed string, ageYears int, weight float64) *models.Pet {
	dob := planNow.AddDate(-ageYears, 0, -1)
	return &models.Pet{
		ID:      "pet-1",
		Name:    "Buddy",
		Species: species,
		Breed:   breed,
		DOB:     &dob,
		Weight:  &weight,
	}
}

func TestPlanLifeStages(t *testing.T) {
	planner, err := NewPlanner()
	if err != nil {
		t.Fatalf("NewPlanner() unexpected error: %v", err)
	}

	tests := []struct {
		name         string
		pet          *models.Pet
		wantAge      int
		wantCalories int
	}{
		{"puppy", testPet("dog", "", 0, 5), 0, 250},
		{"adult dog", testPet("dog", "", 3, 10), 3, 300},
		{"senior dog", testPet("dog", "", 10, 10), 10, 250},
		{"kitten", testPet("cat", "", 0, 4), 0, 220},
		{"adult cat", testPet("cat", "", 5, 4), 5, 160},
		{"senior cat", testPet("cat", "", 12, 4), 12, 140},
		{"species is case-insensitive", testPet("Dog", "", 3, 10), 3, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := planner.Plan(tt.pet, planNow)
			if err != nil {
				t.Fatalf("Plan() unexpected error: %v", err)
			}

			if plan.Age != tt.wantAge {
				t.Errorf("Plan() age = %d, want %d", plan.Age, tt.wantAge)
			}
			if plan.DailyCalories != tt.wantCalories {
				t.Errorf("Plan() daily calories = %d, want %d", plan.DailyCalories, tt.wantCalories)
			}
			if len(plan.Meals) != 3 {
				t.Errorf("Plan() meals = %d, want 3", len(plan.Meals))
			}
		})
	}
}

func TestPlanPortions(t *testing.T) {
	planner, err := NewPlanner()
	if err != nil {
		t.Fatalf("NewPlanner() unexpected error: %v", err)
	}

	// Adult 10kg dog: 300 kcal/day at 3.5 kcal/g across 0.3/0.4/0.3.
	plan, err := planner.Plan(testPet("dog", "", 3, 10), planNow)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}

	wantPortions := []int{26, 34, 26}
	for i, meal := range plan.Meals {
		if meal.PortionG != wantPortions[i] {
			t.Errorf("Plan() meal %d portion = %dg, want %dg", i, meal.PortionG, wantPortions[i])
		}
	}
}

func TestPlanBreedAdjustments(t *testing.T) {
	planner, err := NewPlanner()
	if err != nil {
		t.Fatalf("NewPlanner() unexpected error: %v", err)
	}

	tests := []struct {
		name           string
		pet            *models.Pet
		wantFirstMealG int
		wantBreedNotes bool
		wantDailyKcal  int
	}{
		// Multipliers scale portions but never the calorie figure.
		{"labrador runs 1.1x", testPet("dog", "labrador", 3, 20), 57, true, 600},
		{"bulldog runs 0.9x", testPet("dog", "bulldog", 3, 20), 46, true, 600},
		{"maine coon runs 1.2x", testPet("cat", "maine coon", 3, 6), 33, true, 240},
		{"breed is case-insensitive", testPet("dog", "Labrador", 3, 20), 57, true, 600},
		{"unknown breed runs 1x", testPet("dog", "mixed", 3, 20), 51, false, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := planner.Plan(tt.pet, planNow)
			if err != nil {
				t.Fatalf("Plan() unexpected error: %v", err)
			}

			if plan.DailyCalories != tt.wantDailyKcal {
				t.Errorf("Plan() daily calories = %d, want %d", plan.DailyCalories, tt.wantDailyKcal)
			}
			if plan.Meals[0].PortionG != tt.wantFirstMealG {
				t.Errorf("Plan() first portion = %dg, want %dg", plan.Meals[0].PortionG, tt.wantFirstMealG)
			}
			if (plan.BreedNotes != "") != tt.wantBreedNotes {
				t.Errorf("Plan() breed notes = %q, want notes: %v", plan.BreedNotes, tt.wantBreedNotes)
			}
		})
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	planner, err := NewPlanner()
	if err != nil {
		t.Fatalf("NewPlanner() unexpected error: %v", err)
	}

	pet := testPet("dog", "labrador", 3, 20)
	first, err := planner.Plan(pet, planNow)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}
	second, err := planner.Plan(pet, planNow)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}

	if first.DailyCalories != second.DailyCalories {
		t.Errorf("Plan() calories differ across runs: %d vs %d", first.DailyCalories, second.DailyCalories)
	}
	for i := range first.Meals {
		if first.Meals[i] != second.Meals[i] {
			t.Errorf("Plan() meal %d differs across runs", i)
		}
	}
}

func TestPlanValidation(t *testing.T) {
	planner, err := NewPlanner()
	if err != nil {
		t.Fatalf("NewPlanner() unexpected error: %v", err)
	}

	noDOB := testPet("dog", "", 3, 10)
	noDOB.DOB = nil
	noWeight := testPet("dog", "", 3, 10)
	noWeight.Weight = nil
	zeroWeight := testPet("dog", "", 3, 0)

	tests := []struct {
		name string
		pet  *models.Pet
	}{
		{"unknown species", testPet("parrot", "", 3, 1)},
		{"missing birth date", noDOB},
		{"missing weight", noWeight},
		{"zero weight", zeroWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planner.Plan(tt.pet, planNow)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Plan() error = %v, want validation failure", err)
			}
		})
	}
}

func TestYearsBetween(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday passed this year", time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), 3},
		{"birthday later this year", time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC), 2},
		{"birthday today", time.Date(2022, 6, 15, 12, 0, 0, 0, time.UTC), 3},
		{"under a year old", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"future date clamps to zero", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearsBetween(tt.dob, planNow); got != tt.want {
				t.Errorf("yearsBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}
