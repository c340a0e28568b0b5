package models

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"passed", "passed"},
		{"pass", "passed"},
		{"OK", "passed"},
		{"success", "passed"},
		{"failed", "failed"},
		{"fail", "failed"},
		{"error", "failed"},
		{"skipped", "skipped"},
		{"skip", "skipped"},
		{"timedOut", "timedout"},
		{"timed_out", "timedout"},
		{"timed-out", "timedout"},
		{"timeout", "timedout"},
		{"", "unknown"},
		{"  passed  ", "passed"},
		{"wobbly", "wobbly"}, // opaque status preserved, not defaulted to failed
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeStatus(tt.input); got != tt.expect {
				t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestStatusSets(t *testing.T) {
	if !IsFailStatus("failed") || !IsFailStatus("timedout") || !IsFailStatus("interrupted") {
		t.Error("expected failure statuses not recognized")
	}
	if IsFailStatus("wobbly") {
		t.Error("opaque status must not count as failed")
	}
	if !IsPassStatus("passed") || IsPassStatus("failed") {
		t.Error("pass status set wrong")
	}
	if !IsSkipStatus("skipped") || IsSkipStatus("passed") {
		t.Error("skip status set wrong")
	}
}

func TestSummarize(t *testing.T) {
	t0 := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(2 * time.Hour)

	cases := []TestCase{
		{Title: "a", Status: "passed", StartedAt: t0},
		{Title: "b", Status: "passed", Flaky: true, StartedAt: t1},
		{Title: "c", Status: "passed"},
		{Title: "d", Status: "failed"},
		{Title: "e", Status: "timedout"},
		{Title: "f", Status: "skipped"},
		{Title: "g", Status: "wobbly"},
	}

	sum := Summarize(cases)
	if sum.Total != 7 {
		t.Errorf("Total = %d, want 7", sum.Total)
	}
	if sum.Passed != 3 {
		t.Errorf("Passed = %d, want 3", sum.Passed)
	}
	if sum.Failed != 2 {
		t.Errorf("Failed = %d, want 2", sum.Failed)
	}
	if sum.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", sum.Skipped)
	}
	if sum.Flaky != 1 {
		t.Errorf("Flaky = %d, want 1", sum.Flaky)
	}
	if !sum.LastRun.Equal(t1) {
		t.Errorf("LastRun = %v, want %v", sum.LastRun, t1)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	if sum.Total != 0 || sum.Failed != 0 || sum.Passed != 0 {
		t.Errorf("empty summary should be all zeros, got %+v", sum)
	}
	if !sum.LastRun.IsZero() {
		t.Errorf("LastRun should be zero for empty input")
	}
}

func TestPairUUID(t *testing.T) {
	u1 := PairUUID("how many tests failed")
	u2 := PairUUID("how many tests failed")
	if u1 != u2 {
		t.Errorf("PairUUID not deterministic: %v != %v", u1, u2)
	}
	if len(u1) != 36 {
		t.Errorf("PairUUID invalid length: %d", len(u1))
	}
	if u1 == PairUUID("how many tests passed") {
		t.Error("different questions produced same UUID")
	}
}

func TestTestCaseID(t *testing.T) {
	tc := &TestCase{Suite: "auth", File: "tests/login.spec.js", Title: "test login", Project: "chromium"}
	want := "auth::tests/login.spec.js::test login::chromium"
	if got := tc.ID(); got != want {
		t.Errorf("ID() = %q, want %q", got, want)
	}
}
