// Package chat wraps an answer resolver with the small conversational layer
// around it: greeting replies, the "last run" intent that works without
// retraining, and the optional low-confidence fallback.
package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/runsage/runsage/internal/config"
	"github.com/runsage/runsage/pkg/models"
)

// Resolver resolves one free-text query to an answer from the closed answer
// universe of a training run.
type Resolver interface {
	Resolve(ctx context.Context, query string) (*models.Resolution, error)
}

// HelpReply is returned for greetings and, when the confidence fallback is
// enabled, for queries the resolver is unsure about.
const HelpReply = "Hi! I'm your test-run helper. You can ask things like: " +
	"'list the failed tests', 'how many tests passed', 'when did the last test run', " +
	"or 'what was the result of <test name>'."

// FallbackReply is the optional low-confidence response. It is a documented
// extension: with min_confidence left at 0 the resolver always answers.
const FallbackReply = "I didn't catch that. Try: 'list the failed tests', " +
	"'how many tests passed', 'when did the last test run', or 'what was the result of <test name>'."

var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*hi\b`),
	regexp.MustCompile(`(?i)^\s*hello\b`),
	regexp.MustCompile(`(?i)^\s*hey\b`),
	regexp.MustCompile(`(?i)\bgood\s*(morning|afternoon|evening)\b`),
	regexp.MustCompile(`(?i)\bhow\s*are\s*you\b`),
	regexp.MustCompile(`(?i)\bhow\s*r\s*you\b`),
	regexp.MustCompile(`(?i)\bgm\b`),
	regexp.MustCompile(`(?i)\bgn\b`),
}

var lastRunPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\blast\s+(test\s*)?run\b`),
	regexp.MustCompile(`(?i)\bmost\s+recent\s+test\b`),
	regexp.MustCompile(`(?i)\bwhen\s+did\s+the\s+last\s+test\s+run\b`),
	regexp.MustCompile(`(?i)\bprevious\s+run\b`),
}

// IsGreeting reports whether the text is a greeting rather than a question.
func IsGreeting(text string) bool {
	t := strings.TrimSpace(text)
	for _, p := range greetingPatterns {
		if p.MatchString(t) {
			return true
		}
	}
	return false
}

// isLastRunQuery detects the last-run intent by pattern so it works even
// against a resolver trained before the intent existed.
func isLastRunQuery(text string) bool {
	for _, p := range lastRunPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Responder answers one query at a time. It holds no conversation history
// and treats the resolver and manifest as read-only.
type Responder struct {
	resolver      Resolver
	manifest      *models.Manifest
	minConfidence float64
	loc           *time.Location
}

// NewResponder creates a responder over a trained resolver and its manifest
func NewResponder(res Resolver, man *models.Manifest, cfg *config.ChatConfig) (*Responder, error) {
	loc := time.Local
	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
		}
	}

	return &Responder{
		resolver:      res,
		manifest:      man,
		minConfidence: cfg.MinConfidence,
		loc:           loc,
	}, nil
}

// Respond maps one user message to one reply.
func (r *Responder) Respond(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)

	if IsGreeting(text) {
		return HelpReply, nil
	}

	if isLastRunQuery(text) {
		return r.lastRunReply(), nil
	}

	res, err := r.resolver.Resolve(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to resolve query: %w", err)
	}

	if res.Answer == models.LastRunPlaceholder {
		return r.lastRunReply(), nil
	}

	if r.minConfidence > 0 && res.Confidence < r.minConfidence {
		return FallbackReply, nil
	}

	return res.Answer, nil
}

// lastRunReply formats the run timestamp captured at training time.
func (r *Responder) lastRunReply() string {
	if r.manifest == nil || r.manifest.LastRun.IsZero() {
		return "I couldn't find a timestamp for the last run."
	}

	local := r.manifest.LastRun.In(r.loc)
	utc := r.manifest.LastRun.UTC()
	return fmt.Sprintf("The last test attempt started on %s (%s UTC).",
		local.Format("2006-01-02 03:04:05 PM MST"),
		utc.Format("2006-01-02 15:04:05"))
}
