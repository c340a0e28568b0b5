package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/runsage/runsage/pkg/models"
)

// The raw* types decode the overlapping shapes Playwright reporters produce:
// nested suites/specs/tests, tests directly under a suite, or a flat
// "results" layout. Alternate key spellings are kept side by side and the
// first non-empty one wins.

type rawReport struct {
	Suites  []rawSuite  `json:"suites"`
	Results []rawResult `json:"results"`
}

type rawSuite struct {
	Title  string     `json:"title"`
	Name   string     `json:"name"`
	File   string     `json:"file"`
	Specs  []rawSpec  `json:"specs"`
	Tests  []rawTest  `json:"tests"`
	Suites []rawSuite `json:"suites"`
}

type rawSpec struct {
	Title string    `json:"title"`
	File  string    `json:"file"`
	Tests []rawTest `json:"tests"`
}

type rawResult struct {
	Suite rawSuiteRef `json:"suite"`
	File  string      `json:"file"`
	Title string      `json:"title"`
	Tests []rawTest   `json:"tests"`
}

type rawSuiteRef struct {
	Title string `json:"title"`
	Name  string `json:"name"`
}

type rawTest struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Status      string       `json:"status"`
	Outcome     string       `json:"outcome"`
	ProjectName string       `json:"projectName"`
	Project     string       `json:"project"`
	ProjectID   string       `json:"projectId"`
	Duration    float64      `json:"duration"`
	DurationMs  float64      `json:"durationMs"`
	Results     []rawAttempt `json:"results"`
	Retries     []rawAttempt `json:"retries"`
	Attempts    []rawAttempt `json:"attempts"`
}

type rawAttempt struct {
	Status     string  `json:"status"`
	Outcome    string  `json:"outcome"`
	Duration   float64 `json:"duration"`
	DurationMs float64 `json:"durationMs"`
	StartTime  string  `json:"startTime"`
}

// ParseError indicates the report JSON could not be interpreted.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse report: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes report JSON into an ordered TestCase sequence. A test record
// missing a title, or carrying no status anywhere in its attempts, is
// malformed and rejected here rather than coerced downstream.
func Parse(data []byte) ([]models.TestCase, error) {
	var raw rawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	var cases []models.TestCase
	walk := func(suiteTitle, file string, test *rawTest) error {
		tc, err := normalizeTest(suiteTitle, file, test)
		if err != nil {
			return err
		}
		cases = append(cases, *tc)
		return nil
	}

	for i := range raw.Suites {
		if err := walkSuite(&raw.Suites[i], walk); err != nil {
			return nil, err
		}
	}
	for i := range raw.Results {
		r := &raw.Results[i]
		suiteTitle := firstNonEmpty(r.Suite.Title, r.Suite.Name)
		file := firstNonEmpty(r.File, r.Title)
		for j := range r.Tests {
			if err := walk(suiteTitle, file, &r.Tests[j]); err != nil {
				return nil, err
			}
		}
	}

	return cases, nil
}

// walkSuite visits every test under a suite, including nested suites and
// tests attached directly to the suite rather than a spec.
func walkSuite(suite *rawSuite, visit func(suiteTitle, file string, test *rawTest) error) error {
	suiteTitle := firstNonEmpty(suite.Title, suite.Name, suite.File)
	for i := range suite.Specs {
		spec := &suite.Specs[i]
		file := firstNonEmpty(spec.File, spec.Title, suite.File)
		for j := range spec.Tests {
			if err := visit(suiteTitle, file, &spec.Tests[j]); err != nil {
				return err
			}
		}
	}
	for i := range suite.Tests {
		if err := visit(suiteTitle, firstNonEmpty(suite.File, suiteTitle), &suite.Tests[i]); err != nil {
			return err
		}
	}
	for i := range suite.Suites {
		if err := walkSuite(&suite.Suites[i], visit); err != nil {
			return err
		}
	}
	return nil
}

// attempt is one normalized try of a test.
type attempt struct {
	status     string
	durationMs int
	startedAt  time.Time
}

// attemptsOf extracts the attempt list across reporter shapes; the first
// populated key of results/retries/attempts wins, falling back to the test's
// own top-level status.
func attemptsOf(test *rawTest) []attempt {
	var raw []rawAttempt
	for _, arr := range [][]rawAttempt{test.Results, test.Retries, test.Attempts} {
		if len(arr) > 0 {
			raw = arr
			break
		}
	}

	if len(raw) == 0 {
		return []attempt{{
			status:     models.NormalizeStatus(firstNonEmpty(test.Status, test.Outcome)),
			durationMs: int(firstNonZero(test.Duration, test.DurationMs)),
		}}
	}

	attempts := make([]attempt, 0, len(raw))
	for _, a := range raw {
		status := firstNonEmpty(a.Status, a.Outcome, test.Status, test.Outcome)
		at := attempt{
			status:     models.NormalizeStatus(status),
			durationMs: int(firstNonZero(a.Duration, a.DurationMs)),
		}
		if a.StartTime != "" {
			if t, err := time.Parse(time.RFC3339Nano, a.StartTime); err == nil {
				at.startedAt = t.UTC()
			}
		}
		attempts = append(attempts, at)
	}
	return attempts
}

// normalizeTest reduces one test record to its final outcome.
func normalizeTest(suiteTitle, file string, test *rawTest) (*models.TestCase, error) {
	if test.Title == "" {
		return nil, &ParseError{Err: fmt.Errorf("test record in %q has no title", firstNonEmpty(file, suiteTitle))}
	}

	attempts := attemptsOf(test)
	final := attempts[len(attempts)-1]
	if final.status == "unknown" && test.Status == "" && test.Outcome == "" && allUnknown(attempts) {
		return nil, &ParseError{Err: fmt.Errorf("test %q has no status", test.Title)}
	}

	failedOnce := false
	duration := 0
	var started time.Time
	for _, a := range attempts {
		if models.IsFailStatus(a.status) {
			failedOnce = true
		}
		duration += a.durationMs
		if !a.startedAt.IsZero() && (started.IsZero() || a.startedAt.After(started)) {
			started = a.startedAt
		}
	}

	return &models.TestCase{
		Suite:      firstNonEmpty(suiteTitle, "Unknown suite"),
		File:       firstNonEmpty(file, "Unknown spec"),
		Title:      test.Title,
		Project:    firstNonEmpty(test.ProjectName, test.Project, test.ProjectID, "default"),
		Status:     final.status,
		Flaky:      failedOnce && models.IsPassStatus(final.status),
		DurationMs: duration,
		StartedAt:  started,
	}, nil
}

func allUnknown(attempts []attempt) bool {
	for _, a := range attempts {
		if a.status != "unknown" {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
