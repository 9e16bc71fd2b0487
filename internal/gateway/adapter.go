package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const DefaultTimeout = 15 * time.Second

// Adapter enforces the response contract on top of a Client. Every failure
// is logged and collapses to an empty result; nothing is retried.
type Adapter struct {
	client  Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewAdapter(client Client, timeout time.Duration, logger *slog.Logger) *Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{client: client, timeout: timeout, logger: logger}
}

// BreakDownGoal returns 3 to 5 steps, or nil.
func (a *Adapter) BreakDownGoal(ctx context.Context, goal string) []Step {
	if a.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	steps, err := a.client.BreakDown(ctx, goal)
	if err == nil {
		err = ValidateSteps(steps)
	}
	if err != nil {
		a.logFailure(ctx, "breakdown", start, err)
		return nil
	}
	a.logger.Debug("gateway call ok", "op", "breakdown", "steps", len(steps), "elapsed", time.Since(start))
	return steps
}

// OrganizeThoughts returns a validated result, or false.
func (a *Adapter) OrganizeThoughts(ctx context.Context, text string) (Thoughts, bool) {
	if a.client == nil {
		return Thoughts{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	out, err := a.client.Organize(ctx, text)
	if err == nil {
		err = ValidateThoughts(out)
	}
	if err != nil {
		a.logFailure(ctx, "organize", start, err)
		return Thoughts{}, false
	}
	a.logger.Debug("gateway call ok", "op", "organize", "elapsed", time.Since(start))
	return out, true
}

func (a *Adapter) logFailure(ctx context.Context, op string, start time.Time, err error) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		err = fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	a.logger.Warn("gateway call failed", "op", op, "elapsed", time.Since(start), "error", err)
}
