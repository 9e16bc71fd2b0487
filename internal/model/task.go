package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidEnergy = errors.New("model: invalid energy mode")
	ErrInvalidColor  = errors.New("model: invalid theme color")
)

type EnergyMode string

const (
	EnergyLow    EnergyMode = "LOW"
	EnergyMedium EnergyMode = "MEDIUM"
	EnergyHigh   EnergyMode = "HIGH"
)

func (e EnergyMode) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

func (e EnergyMode) Label() string {
	switch e {
	case EnergyLow:
		return "Recharge"
	case EnergyHigh:
		return "Hyperfocus"
	default:
		return "Balanced"
	}
}

func (e EnergyMode) Hint() string {
	switch e {
	case EnergyLow:
		return "Gentle pace, focus on self-care."
	case EnergyHigh:
		return "Full energy for creative projects."
	default:
		return "Good for routine tasks."
	}
}

func ParseEnergyMode(raw string) (EnergyMode, error) {
	mode := EnergyMode(strings.ToUpper(strings.TrimSpace(raw)))
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEnergy, raw)
	}
	return mode, nil
}

type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Completed   bool       `json:"completed" yaml:"completed"`
	IsMicro     bool       `json:"isMicro" yaml:"is_micro"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completed_at,omitempty"`
}

// Validate accepts a completed task without CompletedAt; snapshots written
// before the timestamp existed carry only the flag.
func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is open")
	}
	return nil
}

type Habit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Icon      string `json:"icon"`
}

func SeedTasks() []Task {
	return []Task{
		{ID: "1", Title: "Drink a glass of water", IsMicro: true},
		{ID: "2", Title: "Open a window for fresh air", IsMicro: true},
	}
}

func SeedHabits() []Habit {
	return []Habit{
		{ID: "h1", Title: "Meditate", Icon: "spa"},
		{ID: "h2", Title: "Sunlight", Icon: "sun"},
		{ID: "h3", Title: "Medication", Icon: "pills"},
	}
}
