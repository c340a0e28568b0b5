package models

import (
	"fmt"
	"strings"
	"time"
)

// TestCase represents one test from a Playwright-style report, reduced to
// the final outcome of its attempts.
type TestCase struct {
	Suite      string    `json:"suite"`
	File       string    `json:"file"`
	Title      string    `json:"title"`
	Project    string    `json:"project"`
	Status     string    `json:"status"` // normalized, e.g. "passed", "failed", "timedout"
	Flaky      bool      `json:"flaky"`
	DurationMs int       `json:"duration_ms,omitempty"`
	StartedAt  time.Time `json:"started_at,omitempty"`
}

// ID returns a stable composite identifier for the test case.
func (tc *TestCase) ID() string {
	return fmt.Sprintf("%s::%s::%s::%s", tc.Suite, tc.File, tc.Title, tc.Project)
}

var (
	failStatuses = map[string]bool{"failed": true, "timedout": true, "interrupted": true}
	passStatuses = map[string]bool{"passed": true}
	skipStatuses = map[string]bool{"skipped": true}
)

// NormalizeStatus folds reporter status variants into canonical values.
// Unrecognized statuses are kept as opaque lowercase strings, never dropped.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	switch s {
	case "":
		return "unknown"
	case "timedout", "timeout", "timedouterror":
		return "timedout"
	case "pass", "ok", "success", "passed":
		return "passed"
	case "skip", "skipping", "skipped":
		return "skipped"
	case "fail", "error", "failed":
		return "failed"
	}
	return s
}

// IsFailStatus reports whether a normalized status counts as a failure.
func IsFailStatus(s string) bool { return failStatuses[s] }

// IsPassStatus reports whether a normalized status counts as a pass.
func IsPassStatus(s string) bool { return passStatuses[s] }

// IsSkipStatus reports whether a normalized status counts as skipped.
func IsSkipStatus(s string) bool { return skipStatuses[s] }

// ReportSummary aggregates outcome counts over a TestCase sequence.
type ReportSummary struct {
	Total   int       `json:"total"`
	Passed  int       `json:"passed"`
	Failed  int       `json:"failed"`
	Skipped int       `json:"skipped"`
	Flaky   int       `json:"flaky"`
	LastRun time.Time `json:"last_run,omitempty"`
}

// Summarize computes a ReportSummary from the full TestCase sequence.
func Summarize(cases []TestCase) ReportSummary {
	sum := ReportSummary{Total: len(cases)}
	for _, tc := range cases {
		switch {
		case IsFailStatus(tc.Status):
			sum.Failed++
		case IsPassStatus(tc.Status):
			sum.Passed++
		case IsSkipStatus(tc.Status):
			sum.Skipped++
		}
		if tc.Flaky {
			sum.Flaky++
		}
		if !tc.StartedAt.IsZero() && tc.StartedAt.After(sum.LastRun) {
			sum.LastRun = tc.StartedAt
		}
	}
	return sum
}
