package report

import (
	"errors"
	"testing"

	"github.com/runsage/runsage/pkg/models"
)

const playwrightReport = `{
  "suites": [
    {
      "title": "signup.spec.js",
      "file": "tests/test_signup.spec.js",
      "specs": [
        {
          "title": "test valid signup",
          "file": "tests/test_signup.spec.js",
          "tests": [
            {
              "title": "test valid signup",
              "projectName": "chromium",
              "results": [
                {"status": "passed", "duration": 1200, "startTime": "2026-08-20T10:00:00.000Z"}
              ]
            }
          ]
        },
        {
          "title": "test invalid email",
          "file": "tests/test_signup.spec.js",
          "tests": [
            {
              "title": "test invalid email",
              "projectName": "chromium",
              "results": [
                {"status": "failed", "duration": 800, "startTime": "2026-08-20T10:00:02.000Z"},
                {"status": "passed", "duration": 900, "startTime": "2026-08-20T10:00:04.000Z"}
              ]
            }
          ]
        }
      ],
      "suites": [
        {
          "title": "nested",
          "specs": [
            {
              "title": "test password rules",
              "file": "tests/test_signup.spec.js",
              "tests": [
                {"title": "test password rules", "status": "timedOut"}
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func TestParsePlaywrightReport(t *testing.T) {
	cases, err := Parse([]byte(playwrightReport))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(cases) != 3 {
		t.Fatalf("len(cases) = %d, want 3", len(cases))
	}

	first := cases[0]
	if first.Title != "test valid signup" {
		t.Errorf("Title = %q, want %q", first.Title, "test valid signup")
	}
	if first.File != "tests/test_signup.spec.js" {
		t.Errorf("File = %q", first.File)
	}
	if first.Status != "passed" {
		t.Errorf("Status = %q, want passed", first.Status)
	}
	if first.Project != "chromium" {
		t.Errorf("Project = %q, want chromium", first.Project)
	}
	if first.StartedAt.IsZero() {
		t.Error("StartedAt should be parsed from startTime")
	}

	// Failed once, passed on retry: flaky, final status passed
	flaky := cases[1]
	if !flaky.Flaky {
		t.Error("retried test should be flaky")
	}
	if flaky.Status != "passed" {
		t.Errorf("final status = %q, want passed", flaky.Status)
	}
	if flaky.DurationMs != 1700 {
		t.Errorf("DurationMs = %d, want 1700", flaky.DurationMs)
	}

	// Nested suite, status normalized from "timedOut"
	nested := cases[2]
	if nested.Title != "test password rules" {
		t.Errorf("Title = %q", nested.Title)
	}
	if nested.Status != "timedout" {
		t.Errorf("Status = %q, want timedout", nested.Status)
	}
	if !models.IsFailStatus(nested.Status) {
		t.Error("timedout should count as failed")
	}
}

func TestParseResultsLayout(t *testing.T) {
	data := `{
	  "results": [
	    {
	      "suite": {"name": "checkout"},
	      "file": "tests/checkout.spec.js",
	      "tests": [
	        {"title": "test cart total", "outcome": "success"}
	      ]
	    }
	  ]
	}`

	cases, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("len(cases) = %d, want 1", len(cases))
	}
	if cases[0].Suite != "checkout" {
		t.Errorf("Suite = %q, want checkout", cases[0].Suite)
	}
	if cases[0].Status != "passed" {
		t.Errorf("Status = %q, want passed (normalized from success)", cases[0].Status)
	}
	if cases[0].Project != "default" {
		t.Errorf("Project = %q, want default", cases[0].Project)
	}
}

func TestParseOpaqueStatusKept(t *testing.T) {
	data := `{"suites":[{"title":"s","specs":[{"title":"t","tests":[{"title":"t","status":"wobbly"}]}]}]}`

	cases, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cases[0].Status != "wobbly" {
		t.Errorf("Status = %q, want opaque status preserved", cases[0].Status)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing title",
			data: `{"suites":[{"title":"s","specs":[{"title":"t","tests":[{"status":"passed"}]}]}]}`,
		},
		{
			name: "missing status",
			data: `{"suites":[{"title":"s","specs":[{"title":"t","tests":[{"title":"t"}]}]}]}`,
		},
		{
			name: "invalid json",
			data: `{"suites": [`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() should reject malformed input")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("error should be a *ParseError, got %T", err)
			}
		})
	}
}

func TestParseEmptyReport(t *testing.T) {
	cases, err := Parse([]byte(`{"suites": []}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cases) != 0 {
		t.Errorf("len(cases) = %d, want 0", len(cases))
	}
}
