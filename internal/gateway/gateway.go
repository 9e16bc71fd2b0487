package gateway

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrTransport = errors.New("gateway: transport failed")
	ErrStatus    = errors.New("gateway: unexpected status")
	ErrDecode    = errors.New("gateway: malformed response")
	ErrSchema    = errors.New("gateway: response does not match schema")
	ErrTimeout   = errors.New("gateway: timed out")
	ErrNoAPIKey  = errors.New("gateway: api key not set")
)

const (
	MinSteps  = 3
	MaxSteps  = 5
	KeyPoints = 3
)

type Step struct {
	Step string `json:"step"`
}

type Thoughts struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}

// Client talks to a generative language service.
type Client interface {
	BreakDown(ctx context.Context, goal string) ([]Step, error)
	Organize(ctx context.Context, text string) (Thoughts, error)
}

// ValidateSteps checks the micro-step contract.
func ValidateSteps(steps []Step) error {
	if len(steps) < MinSteps || len(steps) > MaxSteps {
		return ErrSchema
	}
	for _, s := range steps {
		if strings.TrimSpace(s.Step) == "" {
			return ErrSchema
		}
	}
	return nil
}

func ValidateThoughts(t Thoughts) error {
	if strings.TrimSpace(t.Summary) == "" || len(t.KeyPoints) != KeyPoints {
		return ErrSchema
	}
	for _, p := range t.KeyPoints {
		if strings.TrimSpace(p) == "" {
			return ErrSchema
		}
	}
	return nil
}

// Messages shown in place of a result when the gateway is unavailable.
const (
	StepsIntro      = "Nice! Here are some micro-steps to get you going:"
	BreakDownFailed = "I couldn't work that out right now, but how about starting with something tiny, like standing up and stretching your arms?"
	OrganizeFailed  = "I couldn't organize that right now. Your words are still here, take a breath and try again in a moment."
)
