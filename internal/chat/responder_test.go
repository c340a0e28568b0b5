package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/runsage/runsage/internal/config"
	"github.com/runsage/runsage/pkg/models"
)

// stubResolver returns a fixed resolution for every query.
type stubResolver struct {
	resolution models.Resolution
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (*models.Resolution, error) {
	r := s.resolution
	return &r, nil
}

func newTestResponder(t *testing.T, res Resolver, man *models.Manifest, minConfidence float64) *Responder {
	t.Helper()
	r, err := NewResponder(res, man, &config.ChatConfig{
		MinConfidence: minConfidence,
		Timezone:      "UTC",
	})
	if err != nil {
		t.Fatalf("NewResponder() error = %v", err)
	}
	return r
}

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		input  string
		expect bool
	}{
		{"hi", true},
		{"Hello there", true},
		{"hey bot", true},
		{"good morning", true},
		{"how are you", true},
		{"gm", true},
		{"how many tests failed", false},
		{"what was the result of test hi-five", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsGreeting(tt.input); got != tt.expect {
				t.Errorf("IsGreeting(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestRespondGreeting(t *testing.T) {
	r := newTestResponder(t, &stubResolver{}, &models.Manifest{}, 0)

	reply, err := r.Respond(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if reply != HelpReply {
		t.Errorf("Respond() = %q, want help reply", reply)
	}
}

func TestRespondPassesThroughResolution(t *testing.T) {
	stub := &stubResolver{resolution: models.Resolution{
		Answer:     "2 of 5 tests failed.",
		Confidence: 0.9,
	}}
	r := newTestResponder(t, stub, &models.Manifest{}, 0)

	reply, err := r.Respond(context.Background(), "how many tests failed")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if reply != "2 of 5 tests failed." {
		t.Errorf("Respond() = %q", reply)
	}
}

func TestRespondLastRunIntent(t *testing.T) {
	lastRun := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	r := newTestResponder(t, &stubResolver{}, &models.Manifest{LastRun: lastRun}, 0)

	for _, q := range []string{
		"when did the last test run",
		"last run",
		"most recent test",
		"previous run",
	} {
		reply, err := r.Respond(context.Background(), q)
		if err != nil {
			t.Fatalf("Respond(%q) error = %v", q, err)
		}
		if !strings.Contains(reply, "2026-08-20") {
			t.Errorf("Respond(%q) = %q, want last-run timestamp", q, reply)
		}
	}
}

func TestRespondLastRunPlaceholderSubstituted(t *testing.T) {
	stub := &stubResolver{resolution: models.Resolution{
		Answer:     models.LastRunPlaceholder,
		Confidence: 0.9,
	}}
	lastRun := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	r := newTestResponder(t, stub, &models.Manifest{LastRun: lastRun}, 0)

	reply, err := r.Respond(context.Background(), "anything resolving to the placeholder")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(reply, models.LastRunPlaceholder) {
		t.Errorf("placeholder leaked to the user: %q", reply)
	}
	if !strings.Contains(reply, "14:30:00") {
		t.Errorf("Respond() = %q, want formatted timestamp", reply)
	}
}

func TestRespondLastRunUnknown(t *testing.T) {
	r := newTestResponder(t, &stubResolver{}, &models.Manifest{}, 0)

	reply, err := r.Respond(context.Background(), "when did the last test run")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "couldn't find a timestamp") {
		t.Errorf("Respond() = %q", reply)
	}
}

func TestRespondConfidenceFallback(t *testing.T) {
	stub := &stubResolver{resolution: models.Resolution{
		Answer:     "The test test login in tests/auth.spec.js passed.",
		Confidence: 0.1,
	}}

	// Fallback disabled: the low-confidence answer passes through.
	r := newTestResponder(t, stub, &models.Manifest{}, 0)
	reply, _ := r.Respond(context.Background(), "florble")
	if reply != stub.resolution.Answer {
		t.Errorf("with threshold 0, Respond() = %q, want raw answer", reply)
	}

	// Fallback enabled: the canned reply replaces it.
	r = newTestResponder(t, stub, &models.Manifest{}, 0.5)
	reply, _ = r.Respond(context.Background(), "florble")
	if reply != FallbackReply {
		t.Errorf("with threshold 0.5, Respond() = %q, want fallback reply", reply)
	}
}
