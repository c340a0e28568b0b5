package semantic

import (
	"context"
	"errors"
	"fmt"

	"github.com/runsage/runsage/internal/vectordb"
	"github.com/runsage/runsage/pkg/models"
)

// ErrEmptyIndex means the collection holds no question points yet.
var ErrEmptyIndex = errors.New("semantic index is empty (run 'runsage train' first)")

const embedBatchSize = 64

// Resolver answers queries by nearest-neighbor lookup over embedded
// training questions. Like the bayes backend it only ever returns answers
// from the indexed set.
type Resolver struct {
	provider   Provider
	db         *vectordb.Client
	collection string
	dims       int
}

// NewResolver creates a semantic resolver over an embedding provider and a
// Qdrant collection.
func NewResolver(provider Provider, db *vectordb.Client, collection string, dims int) *Resolver {
	return &Resolver{
		provider:   provider,
		db:         db,
		collection: collection,
		dims:       dims,
	}
}

// Index rebuilds the collection from the given pairs. The collection is
// recreated so points from a previous report never leak into the new index.
func (r *Resolver) Index(ctx context.Context, pairs []models.QAPair) error {
	if len(pairs) == 0 {
		return fmt.Errorf("no pairs to index")
	}

	if err := r.db.RecreateCollection(ctx, r.collection, r.dims); err != nil {
		return err
	}

	// Labels follow first-seen answer order, matching the bayes backend
	labelOf := make(map[string]int)
	labels := make([]int, len(pairs))
	for i, p := range pairs {
		label, ok := labelOf[p.Answer]
		if !ok {
			label = len(labelOf)
			labelOf[p.Answer] = label
		}
		labels[i] = label
	}

	for start := 0; start < len(pairs); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(pairs) {
			end = len(pairs)
		}
		batch := pairs[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = PrepareQuestionText(p.Question)
		}

		vectors, err := r.provider.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed questions: %w", err)
		}

		if err := r.db.UpsertPairs(ctx, r.collection, batch, vectors, labels[start:end]); err != nil {
			return err
		}
	}

	return nil
}

// Resolve embeds the query and returns the answer of its nearest question.
func (r *Resolver) Resolve(ctx context.Context, query string) (*models.Resolution, error) {
	vector, err := r.provider.Embed(ctx, PrepareQuestionText(query))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.db.Search(ctx, r.collection, vector, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrEmptyIndex
	}

	best := results[0]
	return &models.Resolution{
		Answer:     best.Answer,
		Label:      best.Label,
		Confidence: best.Score,
	}, nil
}

// Close releases the embedding provider and database connection.
func (r *Resolver) Close() error {
	var errs []error
	if err := r.provider.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := r.db.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
