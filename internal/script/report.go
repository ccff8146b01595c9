// File: report.go
// Title: Script Run Reports
// Description: Results of a script run and their terminal rendering.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-05
// Modified: 2025-08-05
//
// Change History:
// - 2025-08-05 v0.1.0: Initial implementation

package script

import (
	"fmt"
	"strings"
	"time"

	"github.com/msto63/safestr/internal/tui"
	"github.com/msto63/safestr/pkg/safestr"
)

// StepResult is the observed result of one step
type StepResult struct {
	Index      int           `json:"index"`
	Op         string        `json:"op"`
	Code       safestr.Code  `json:"code"`
	Content    string        `json:"content"`
	Duration   time.Duration `json:"duration"`
	Mismatches []string      `json:"mismatches,omitempty"`
}

// Passed reports whether every expectation of the step held
func (r StepResult) Passed() bool {
	return len(r.Mismatches) == 0
}

// Report is the result of one script run
type Report struct {
	RunID    string        `json:"run_id"`
	Script   string        `json:"script"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Steps    []StepResult  `json:"steps"`
}

// Passed reports whether every step passed
func (r *Report) Passed() bool {
	return r.Failed() == 0
}

// Failed returns the number of failed steps
func (r *Report) Failed() int {
	failed := 0
	for _, step := range r.Steps {
		if !step.Passed() {
			failed++
		}
	}
	return failed
}

// Render formats the report for the terminal. Passing steps are only listed
// when verbose is set.
func (r *Report) Render(verbose bool) string {
	var b strings.Builder

	b.WriteString(tui.RenderStatus(r.Passed()))
	b.WriteString(" ")
	b.WriteString(tui.SectionStyle.Render(r.Script))
	b.WriteString(tui.SubtitleStyle.Render(fmt.Sprintf("  %d steps, %d failed, %s",
		len(r.Steps), r.Failed(), r.Duration.Round(time.Microsecond))))
	b.WriteString("\n")

	for _, step := range r.Steps {
		if step.Passed() && !verbose {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %3d %-20s %-16s %s\n",
			tui.RenderStatus(step.Passed()), step.Index, step.Op, step.Code, tui.RenderContent(step.Content)))
		for _, m := range step.Mismatches {
			b.WriteString("        ")
			b.WriteString(tui.RenderError(m))
			b.WriteString("\n")
		}
	}
	return b.String()
}
