package nutrition

import (
	"fmt"
	"math"
	"strings"
	"time"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
)

// Planner turns a pet profile into a daily meal plan.
type Planner struct {
	guidelines map[string]*Guideline
}

// NewPlanner loads the embedded guideline tables.
func NewPlanner() (*Planner, error) {
	guidelines, err := loadGuidelines()
	if err != nil {
		return nil, fmt.Errorf("load feeding guidelines: %w", err)
	}
	return &Planner{guidelines: guidelines}, nil
}

// Plan computes the meal plan for a pet as of now. Species without a
// guideline table and profiles missing a birth date or weight are
// validation failures.
func (pl *Planner) Plan(pet *models.Pet, now time.Time) (*models.MealPlan, error) {
	guideline, ok := pl.guidelines[strings.ToLower(pet.Species)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown species %q", domain.ErrValidation, pet.Species)
	}
	if pet.DOB == nil || pet.Weight == nil || *pet.Weight <= 0 {
		return nil, fmt.Errorf("%w: pet needs a birth date and weight for a meal plan", domain.ErrValidation)
	}

	age := yearsBetween(*pet.DOB, now)
	stage := guideline.stageFor(age)
	dailyCalories := int(math.Round(stage.CaloriesPerKg * *pet.Weight))

	adjustment := BreedAdjustment{Multiplier: 1}
	if breed, ok := guideline.Breeds[strings.ToLower(pet.Breed)]; ok {
		adjustment = breed
	}

	meals := make([]models.Meal, 0, len(guideline.Meals))
	for _, tmpl := range guideline.Meals {
		grams := float64(dailyCalories) * tmpl.Share / guideline.KcalPerGram * adjustment.Multiplier
		meals = append(meals, models.Meal{
			MealTime: tmpl.MealTime,
			Food:     tmpl.Food,
			PortionG: int(math.Round(grams)),
			Notes:    tmpl.Notes,
		})
	}

	return &models.MealPlan{
		PetID:         pet.ID,
		PetName:       pet.Name,
		Species:       pet.Species,
		Breed:         pet.Breed,
		Age:           age,
		Weight:        *pet.Weight,
		DailyCalories: dailyCalories,
		Meals:         meals,
		Nutrients:     guideline.Nutrients,
		AvoidFoods:    guideline.AvoidFoods,
		Hydration:     guideline.Hydration,
		BreedNotes:    adjustment.Notes,
	}, nil
}

// yearsBetween is the whole-year age at now for a birth date,
// decremented if the birthday has not yet passed this year.
func yearsBetween(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}
