package journeys

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Status is the outcome of one step
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StepResult records how one step went
type StepResult struct {
	Name     string
	Status   Status
	Duration time.Duration
	Err      error
}

// Result records how a whole journey went
type Result struct {
	Journey  string
	Steps    []StepResult
	Duration time.Duration
}

// Passed reports whether every step passed
func (r Result) Passed() bool {
	for _, s := range r.Steps {
		if s.Status != StatusPassed {
			return false
		}
	}
	return true
}

// Err returns the error of the failed step, if any
func (r Result) Err() error {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return fmt.Errorf("%s: step %q: %w", r.Journey, s.Name, s.Err)
		}
	}
	return nil
}

// Failure describes a failed step to a FailureHook
type Failure struct {
	Journey string
	Step    string
	Pages   *Pages
	Err     error
}

// FailureHook runs after a step fails and before the failure is reported
type FailureHook func(ctx context.Context, f Failure) error

// Runner runs journeys step by step and stops at the first failing step
type Runner struct {
	logger *zap.Logger
	hooks  []FailureHook
}

// NewRunner returns a Runner that calls hooks, in order, on every failed step
func NewRunner(logger *zap.Logger, hooks ...FailureHook) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger: logger,
		hooks:  hooks,
	}
}

// Run executes j against p. Once a step fails the remaining steps are marked skipped: they
// depend on page state the failed step never produced.
func (r *Runner) Run(ctx context.Context, j Journey, p *Pages) Result {
	start := time.Now()
	logger := r.logger.With(zap.String("journey", j.Name))
	logger.Info("journey started", zap.Int("steps", len(j.Steps)))

	result := Result{Journey: j.Name, Steps: make([]StepResult, 0, len(j.Steps))}
	failed := false
	for _, step := range j.Steps {
		if failed {
			result.Steps = append(result.Steps, StepResult{Name: step.Name, Status: StatusSkipped})
			logger.Debug("step skipped", zap.String("step", step.Name))
			continue
		}

		sr := r.RunStep(ctx, j.Name, step, p)
		result.Steps = append(result.Steps, sr)
		failed = sr.Status == StatusFailed
	}

	result.Duration = time.Since(start)
	if failed {
		logger.Warn("journey failed", zap.Duration("duration", result.Duration), zap.Error(result.Err()))
	} else {
		logger.Info("journey passed", zap.Duration("duration", result.Duration))
	}
	return result
}

// RunStep executes a single step of journey and runs the failure hooks if it fails
func (r *Runner) RunStep(ctx context.Context, journey string, step Step, p *Pages) StepResult {
	logger := r.logger.With(zap.String("journey", journey), zap.String("step", step.Name))

	start := time.Now()
	err := step.Run(ctx, p)
	sr := StepResult{Name: step.Name, Status: StatusPassed, Duration: time.Since(start), Err: err}
	if err == nil {
		logger.Info("step passed", zap.Duration("duration", sr.Duration))
		return sr
	}

	sr.Status = StatusFailed
	logger.Error("step failed", zap.Duration("duration", sr.Duration), zap.Error(err))

	for _, hook := range r.hooks {
		if hookErr := hook(ctx, Failure{Journey: journey, Step: step.Name, Pages: p, Err: err}); hookErr != nil {
			logger.Warn("failure hook failed", zap.Error(hookErr))
		}
	}
	return sr
}
