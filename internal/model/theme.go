package model

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type ThemeField string

const (
	ThemePrimary    ThemeField = "primary"
	ThemeBackground ThemeField = "background"
	ThemeText       ThemeField = "text"
	ThemeCard       ThemeField = "card"
)

func ParseThemeField(raw string) (ThemeField, bool) {
	f := ThemeField(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case ThemePrimary, ThemeBackground, ThemeText, ThemeCard:
		return f, true
	default:
		return "", false
	}
}

type Theme struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Card       string `json:"card"`
}

// DefaultTheme is the palette a fresh install starts with.
func DefaultTheme() Theme {
	return Theme{
		Primary:    "#0ea5e9",
		Background: "#f0f9ff",
		Text:       "#0f172a",
		Card:       "#ffffff",
	}
}

// NeutralTheme is what the settings tab resets to.
func NeutralTheme() Theme {
	return Theme{
		Primary:    "#3b82f6",
		Background: "#f8fafc",
		Text:       "#1e293b",
		Card:       "#ffffff",
	}
}

func (t Theme) Validate() error {
	for _, c := range []struct {
		field ThemeField
		value string
	}{
		{ThemePrimary, t.Primary},
		{ThemeBackground, t.Background},
		{ThemeText, t.Text},
		{ThemeCard, t.Card},
	} {
		if !hexColor.MatchString(c.value) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidColor, c.field, c.value)
		}
	}
	return nil
}

// With returns a copy of t with one color replaced.
func (t Theme) With(field ThemeField, color string) (Theme, error) {
	color = strings.TrimSpace(color)
	if !hexColor.MatchString(color) {
		return t, fmt.Errorf("%w: %s=%q", ErrInvalidColor, field, color)
	}
	switch field {
	case ThemePrimary:
		t.Primary = color
	case ThemeBackground:
		t.Background = color
	case ThemeText:
		t.Text = color
	case ThemeCard:
		t.Card = color
	default:
		return t, fmt.Errorf("model: unknown theme field %q", field)
	}
	return t, nil
}

// Snapshot is the subset of application state that survives restarts.
type Snapshot struct {
	Theme   Theme  `json:"theme"`
	Points  int    `json:"dopaminePoints"`
	Tasks   []Task `json:"tasks"`
	Premium bool   `json:"isPremium"`
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		Theme: DefaultTheme(),
		Tasks: SeedTasks(),
	}
}
