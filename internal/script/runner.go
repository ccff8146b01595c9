// File: runner.go
// Title: Operation Script Runner
// Description: Executes scripts step by step against a String, checks every
//              expectation and collects the results into a Report. Runs are
//              bounded by a timeout and identified by a run ID.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-05
// Modified: 2025-08-06
//
// Change History:
// - 2025-08-05 v0.1.0: Initial runner implementation
// - 2025-08-06 v0.1.1: Stop-on-failure and per-script limits

package script

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/msto63/safestr/pkg/safestr"
)

// Options configures runner behavior
type Options struct {
	// DefaultCapacity is used for scripts that neither set initial content
	// nor a capacity
	DefaultCapacity int

	// StringOptions apply to every String the runner creates
	StringOptions []safestr.Option

	// Timeout bounds a single script run; 0 disables it
	Timeout time.Duration

	// StopOnFailure skips the remaining steps after the first failure
	StopOnFailure bool

	Logger zerolog.Logger
}

// Runner executes scripts using the operations of a registry
type Runner struct {
	registry *Registry
	options  Options
	logger   zerolog.Logger
}

// NewRunner creates a runner. A nil registry gets the built-in operations.
func NewRunner(registry *Registry, opts Options) (*Runner, error) {
	if registry == nil {
		var err error
		if registry, err = NewRegistry(); err != nil {
			return nil, err
		}
	}
	if opts.DefaultCapacity <= 0 {
		opts.DefaultCapacity = safestr.DefaultCapacity
	}

	return &Runner{
		registry: registry,
		options:  opts,
		logger:   opts.Logger.With().Str("component", "script-runner").Logger(),
	}, nil
}

// RunFile loads every script of a file and runs them in order
func (r *Runner) RunFile(ctx context.Context, path string) ([]*Report, error) {
	scripts, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, 0, len(scripts))
	for _, sc := range scripts {
		report, err := r.Run(ctx, sc)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Run executes one script. The returned error reports a script that could
// not be run (unknown operation, malformed step, cancellation); failed
// expectations are recorded in the report instead.
func (r *Runner) Run(ctx context.Context, sc *Script) (*Report, error) {
	if sc == nil {
		return nil, fmt.Errorf("script cannot be nil")
	}

	if r.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.options.Timeout)
		defer cancel()
	}

	report := &Report{
		RunID:   uuid.New().String(),
		Script:  sc.Name,
		Started: time.Now(),
	}
	logger := r.logger.With().Str("run_id", report.RunID).Str("script", sc.Name).Logger()

	st, err := r.newState(sc)
	if err != nil {
		return nil, err
	}
	defer func() { st.Str.Release() }()

	logger.Debug().Int("steps", len(sc.Steps)).Msg("script started")

	for i := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("script %q interrupted before step %d: %w", sc.Name, i+1, err)
		}

		step := &sc.Steps[i]
		def, ok := r.registry.Lookup(step.Op)
		if !ok {
			return nil, fmt.Errorf("script %q step %d: unknown operation %q", sc.Name, i+1, step.Op)
		}

		start := time.Now()
		outcome, err := def.Handler(st, step)
		if err != nil {
			return nil, fmt.Errorf("script %q step %d (%s): %w", sc.Name, i+1, step.Op, err)
		}

		result := StepResult{
			Index:      i + 1,
			Op:         step.Op,
			Code:       outcome.Code,
			Content:    st.Str.String(),
			Duration:   time.Since(start),
			Mismatches: verify(step, outcome),
		}
		report.Steps = append(report.Steps, result)

		if result.Passed() {
			logger.Debug().
				Int("step", result.Index).
				Str("op", result.Op).
				Stringer("code", result.Code).
				Msg("step passed")
			continue
		}

		logger.Warn().
			Int("step", result.Index).
			Str("op", result.Op).
			Strs("mismatches", result.Mismatches).
			Msg("step failed")
		if r.options.StopOnFailure {
			break
		}
	}

	report.Duration = time.Since(report.Started)
	logger.Info().
		Bool("passed", report.Passed()).
		Int("failed", report.Failed()).
		Dur("duration", report.Duration).
		Msg("script finished")

	return report, nil
}

// newState creates the String a script starts from
func (r *Runner) newState(sc *Script) (*State, error) {
	opts := r.options.StringOptions
	if sc.Limit > 0 {
		opts = append(append([]safestr.Option(nil), opts...), safestr.WithLimit(sc.Limit))
	}

	var s *safestr.String
	switch {
	case sc.Initial != nil:
		s = safestr.NewFromBuffer([]byte(*sc.Initial), len(*sc.Initial), opts...)
	case sc.Capacity > 0:
		s = safestr.NewWithCapacity(sc.Capacity, opts...)
	default:
		s = safestr.NewWithCapacity(r.options.DefaultCapacity, opts...)
	}
	if s == nil {
		return nil, fmt.Errorf("script %q: failed to create initial String", sc.Name)
	}

	return &State{Str: s, Options: opts}, nil
}

// verify checks the outcome against every expectation the step sets
func verify(step *Step, out Outcome) []string {
	mismatches := append([]string(nil), out.Mismatches...)

	if out.Code != step.WantCode() {
		msg := fmt.Sprintf("code = %s; want %s", out.Code, step.WantCode())
		if out.Err != nil {
			msg += fmt.Sprintf(" (%v)", out.Err)
		}
		mismatches = append(mismatches, msg)
	}

	if step.WantPos != nil {
		switch {
		case out.Pos == nil:
			mismatches = append(mismatches, "want_pos set but operation reports no position")
		case *out.Pos != *step.WantPos:
			mismatches = append(mismatches, fmt.Sprintf("position = %d; want %d", *out.Pos, *step.WantPos))
		}
	}

	if step.WantCmp != nil {
		switch {
		case out.Cmp == nil:
			mismatches = append(mismatches, "want_cmp set but operation reports no ordering")
		case sign(*out.Cmp) != sign(*step.WantCmp):
			mismatches = append(mismatches, fmt.Sprintf("ordering = %d; want %d", sign(*out.Cmp), sign(*step.WantCmp)))
		}
	}

	if step.WantBool != nil {
		switch {
		case out.Bool == nil:
			mismatches = append(mismatches, "want_bool set but operation reports no boolean")
		case *out.Bool != *step.WantBool:
			mismatches = append(mismatches, fmt.Sprintf("result = %t; want %t", *out.Bool, *step.WantBool))
		}
	}

	if step.WantText != nil {
		switch {
		case out.Text == nil:
			mismatches = append(mismatches, "want_text set but operation reports no text")
		case *out.Text != *step.WantText:
			mismatches = append(mismatches, fmt.Sprintf("text = %q; want %q", *out.Text, *step.WantText))
		}
	}

	return mismatches
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
