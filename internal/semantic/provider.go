// Package semantic is the embedding-based resolver backend. Questions are
// embedded and indexed in Qdrant at training time; a query resolves to the
// answer of its nearest indexed question.
package semantic

import (
	"context"
	"strings"
)

// Provider defines the interface for embedding generation
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

// PrepareQuestionText normalizes a question before embedding so indexing
// and querying see identical text for identical questions.
func PrepareQuestionText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	// Truncate to stay well within provider input limits
	if len(text) > 6000 {
		text = text[:6000]
	}

	return strings.Join(strings.Fields(text), " ")
}
