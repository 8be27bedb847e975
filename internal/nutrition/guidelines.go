// Package nutrition computes deterministic daily meal plans from
// species feeding-guideline tables embedded at build time. There is no
// generated text anywhere in a plan: the same pet always gets the same
// plan for the same guideline data.
package nutrition

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed guidelines/*.yaml
var guidelineFiles embed.FS

// LifeStage maps an age band to a calorie requirement per kg of body
// weight. A zero UnderAge marks the open-ended final stage.
type LifeStage struct {
	Name          string  `yaml:"name"`
	UnderAge      int     `yaml:"under_age"`
	CaloriesPerKg float64 `yaml:"calories_per_kg"`
}

// MealTemplate is one feeding slot with its share of daily calories.
type MealTemplate struct {
	MealTime string  `yaml:"meal_time"`
	Food     string  `yaml:"food"`
	Share    float64 `yaml:"share"`
	Notes    string  `yaml:"notes"`
}

// BreedAdjustment scales portions for breeds with known needs.
type BreedAdjustment struct {
	Multiplier float64 `yaml:"multiplier"`
	Notes      string  `yaml:"notes"`
}

// Guideline is one species' complete feeding table.
type Guideline struct {
	Species     string                     `yaml:"species"`
	KcalPerGram float64                    `yaml:"kcal_per_gram"`
	LifeStages  []LifeStage                `yaml:"life_stages"`
	Meals       []MealTemplate             `yaml:"meals"`
	Nutrients   []string                   `yaml:"nutrients"`
	AvoidFoods  []string                   `yaml:"avoid_foods"`
	Hydration   string                     `yaml:"hydration"`
	Breeds      map[string]BreedAdjustment `yaml:"breeds"`
}

// loadGuidelines reads every embedded species file.
func loadGuidelines() (map[string]*Guideline, error) {
	guidelines := make(map[string]*Guideline)

	entries, err := guidelineFiles.ReadDir("guidelines")
	if err != nil {
		return nil, fmt.Errorf("read guidelines dir: %w", err)
	}

	for _, entry := range entries {
		data, err := guidelineFiles.ReadFile("guidelines/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		var g Guideline
		if err := yaml.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", entry.Name(), err)
		}
		if g.Species == "" || g.KcalPerGram <= 0 || len(g.LifeStages) == 0 || len(g.Meals) == 0 {
			return nil, fmt.Errorf("guideline %s is incomplete", entry.Name())
		}

		guidelines[strings.ToLower(g.Species)] = &g
	}

	return guidelines, nil
}

// stageFor picks the life stage for an age in whole years.
func (g *Guideline) stageFor(age int) LifeStage {
	for _, stage := range g.LifeStages {
		if stage.UnderAge > 0 && age < stage.UnderAge {
			return stage
		}
	}
	return g.LifeStages[len(g.LifeStages)-1]
}
