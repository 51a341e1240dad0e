package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/inspire-quotes/internal/platform/logging"
)

// Operations that write run as Validate → Perform → Verify → Archive →
// Respond. Nothing outside the operation changes before Validate passes, and
// a failure reports the step it happened in so callers can react per step.

// Step names a stage of an Operation.
type Step string

const (
	StepValidate Step = "validate"
	StepPerform  Step = "perform"
	StepVerify   Step = "verify"
	StepArchive  Step = "archive"
	StepRespond  Step = "respond"
)

// StepError records the step an operation failed in.
type StepError struct {
	Step  Step
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// FailedStep extracts the step from an error returned by Execute.
func FailedStep(err error) (Step, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}

	return "", false
}

// Operation holds the step functions. Nil steps are skipped.
type Operation[I, P, O any] struct {
	Name string

	// Validate checks preconditions against the input.
	Validate func(ctx context.Context, in I) error

	// Perform does the work, typically one call to a port.
	Perform func(ctx context.Context, in I) (P, error)

	// Verify checks what Perform returned.
	Verify func(ctx context.Context, in I, performed P) error

	// Archive records the verified result in local state.
	Archive func(ctx context.Context, in I, performed P) error

	// Respond builds the caller's result.
	Respond func(ctx context.Context, in I, performed P) (O, error)
}

// Executor runs operations with per-step logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor falls back to slog.Default when logger is nil.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Execute runs op on in. The context logger is preferred over the
// executor's own when the request carries one.
func Execute[I, P, O any](ctx context.Context, exec *Executor, op Operation[I, P, O], in I) (O, error) {
	var zero O

	logger := exec.logger
	if l := logging.FromContext(ctx); l != slog.Default() {
		logger = l
	}
	logger = logger.With(slog.String("operation", op.Name))

	start := time.Now()

	fail := func(step Step, err error) (O, error) {
		level := slog.LevelError
		if step == StepValidate {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "operation step failed",
			slog.String("step", string(step)),
			slog.Any("error", err),
		)

		return zero, &StepError{Step: step, Cause: err}
	}

	if op.Validate != nil {
		if err := op.Validate(ctx, in); err != nil {
			return fail(StepValidate, err)
		}
	}

	var performed P
	if op.Perform != nil {
		p, err := op.Perform(ctx, in)
		if err != nil {
			return fail(StepPerform, err)
		}
		performed = p
	}

	if op.Verify != nil {
		if err := op.Verify(ctx, in, performed); err != nil {
			return fail(StepVerify, err)
		}
	}

	if op.Archive != nil {
		if err := op.Archive(ctx, in, performed); err != nil {
			return fail(StepArchive, err)
		}
	}

	out := zero
	if op.Respond != nil {
		o, err := op.Respond(ctx, in, performed)
		if err != nil {
			return fail(StepRespond, err)
		}
		out = o
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}
