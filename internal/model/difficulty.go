package model

import (
	"strings"
	"time"
)

// DifficultyProfile holds the evasion parameters for one difficulty level.
type DifficultyProfile struct {
	Name            string
	MoveDistance    float64
	MoveSpeed       time.Duration
	TriggerDistance float64
}

// Difficulty preset names.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var difficulties = []DifficultyProfile{
	{Name: DifficultyEasy, MoveDistance: 100, MoveSpeed: 300 * time.Millisecond, TriggerDistance: 80},
	{Name: DifficultyMedium, MoveDistance: 150, MoveSpeed: 200 * time.Millisecond, TriggerDistance: 120},
	{Name: DifficultyHard, MoveDistance: 200, MoveSpeed: 150 * time.Millisecond, TriggerDistance: 150},
}

// Difficulties returns the presets ordered from easiest to hardest.
func Difficulties() []DifficultyProfile {
	out := make([]DifficultyProfile, len(difficulties))
	copy(out, difficulties)
	return out
}

// LookupDifficulty finds a preset by name, case-insensitively.
func LookupDifficulty(name string) (DifficultyProfile, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range difficulties {
		if d.Name == name {
			return d, true
		}
	}
	return DifficultyProfile{}, false
}

// DefaultDifficulty returns the easy preset.
func DefaultDifficulty() DifficultyProfile {
	return difficulties[0]
}
