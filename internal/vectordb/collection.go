package vectordb

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// EnsureCollection creates the collection if it doesn't exist
func (c *Client) EnsureCollection(ctx context.Context, name string, dims int) error {
	exists, err := c.qdrant.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = c.qdrant.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dims),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// RecreateCollection drops and recreates the collection. Each training run
// rebuilds the index from scratch so no points from a previous report survive.
func (c *Client) RecreateCollection(ctx context.Context, name string, dims int) error {
	exists, err := c.qdrant.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		if err := c.qdrant.DeleteCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
	}
	return c.EnsureCollection(ctx, name, dims)
}

// CollectionExists checks if a collection exists
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	return c.qdrant.CollectionExists(ctx, name)
}

// DeleteCollection removes a collection
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	return c.qdrant.DeleteCollection(ctx, name)
}
