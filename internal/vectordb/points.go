package vectordb

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"github.com/runsage/runsage/pkg/models"
)

// SearchResult is one question/answer point with its similarity score
type SearchResult struct {
	Question string
	Answer   string
	Label    int
	Score    float64
}

// UpsertPairs inserts or updates one point per question/answer pair. The
// point id is derived from the question text so re-indexing the same pair
// overwrites instead of duplicating.
func (c *Client) UpsertPairs(ctx context.Context, collection string, pairs []models.QAPair, vectors [][]float32, labels []int) error {
	if len(pairs) != len(vectors) || len(pairs) != len(labels) {
		return fmt.Errorf("pairs, vectors and labels length mismatch")
	}

	points := make([]*qdrant.PointStruct, len(pairs))
	for i, p := range pairs {
		points[i] = pairToPoint(&p, vectors[i], labels[i])
	}

	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("batch upsert failed: %w", err)
	}
	return nil
}

// Search finds the pairs whose questions are closest to the query vector
func (c *Client) Search(ctx context.Context, collection string, vector []float32, limit int) ([]SearchResult, error) {
	points, err := c.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		r := SearchResult{Score: float64(point.Score)}
		if v := point.Payload["question"]; v != nil {
			r.Question = v.GetStringValue()
		}
		if v := point.Payload["answer"]; v != nil {
			r.Answer = v.GetStringValue()
		}
		if v := point.Payload["label"]; v != nil {
			r.Label = int(v.GetIntegerValue())
		}
		results = append(results, r)
	}

	return results, nil
}

// pairToPoint converts a question/answer pair to a Qdrant point
func pairToPoint(pair *models.QAPair, vector []float32, label int) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(models.PairUUID(pair.Question)),
		Vectors: qdrant.NewVectors(vector...),
		Payload: map[string]*qdrant.Value{
			"question": qdrant.NewValueString(pair.Question),
			"answer":   qdrant.NewValueString(pair.Answer),
			"label":    qdrant.NewValueInt(int64(label)),
		},
	}
}
