// Package pipeline assembles the training steps into one run: fetch the
// report, synthesize pairs, fit the classifier, persist the artifacts and,
// for the semantic backend, rebuild the vector index.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runsage/runsage/internal/artifact"
	"github.com/runsage/runsage/internal/config"
	"github.com/runsage/runsage/internal/pipeline/core"
	"github.com/runsage/runsage/internal/pipeline/steps"
	"github.com/runsage/runsage/internal/report"
	"github.com/runsage/runsage/internal/semantic"
	"github.com/runsage/runsage/internal/vectordb"
	"github.com/runsage/runsage/pkg/models"
)

// Result contains the outcome of one training run
type Result struct {
	Skipped    bool
	SkipReason string
	Stats      *models.TrainStats
	Manifest   *models.Manifest
}

// Trainer runs the training pipeline end to end
type Trainer struct {
	cfg       *config.Config
	dryRun    bool
	ifChanged bool
	sem       *semantic.Resolver

	// pipeline is the sequence of steps to execute
	pipeline []core.Step
}

// NewTrainer creates a trainer for the configured resolver backend
func NewTrainer(cfg *config.Config, dryRun, ifChanged bool) (*Trainer, error) {
	client := report.NewClient(&cfg.Source)
	store := artifact.NewStore(cfg.Artifacts.Dir)

	t := &Trainer{
		cfg:       cfg,
		dryRun:    dryRun,
		ifChanged: ifChanged,
		pipeline: []core.Step{
			steps.NewFetch(client, store),
			steps.NewSynthesize(),
			steps.NewFit(),
			steps.NewPersist(store),
		},
	}

	if cfg.Resolver.Backend == "semantic" {
		embedder, err := semantic.NewFallbackProvider(&cfg.Embedding)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding provider: %w", err)
		}

		vdb, err := vectordb.NewClient(&cfg.Qdrant)
		if err != nil {
			embedder.Close()
			return nil, fmt.Errorf("failed to create vector DB client: %w", err)
		}

		t.sem = semantic.NewResolver(embedder, vdb, cfg.Qdrant.Collection, cfg.Embedding.Primary.Dimensions)
		t.pipeline = append(t.pipeline, steps.NewIndex(t.sem))
	}

	return t, nil
}

// Run executes the pipeline once
func (t *Trainer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	pCtx := &core.Context{
		Ctx:       ctx,
		Config:    t.cfg,
		DryRun:    t.dryRun,
		IfChanged: t.ifChanged,
	}

	for _, step := range t.pipeline {
		if err := step.Run(pCtx); err != nil {
			if errors.Is(err, core.ErrSkipPipeline) {
				return &Result{Skipped: true, SkipReason: pCtx.SkipReason}, nil
			}
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
	}

	stats := &models.TrainStats{
		Cases:      len(pCtx.Cases),
		Pairs:      len(pCtx.Pairs),
		Answers:    len(pCtx.Resolver.Answers()),
		Vocabulary: pCtx.Resolver.VocabularySize(),
		DurationMs: int(time.Since(start).Milliseconds()),
	}

	return &Result{Stats: stats, Manifest: pCtx.Manifest}, nil
}

// Close releases backend resources
func (t *Trainer) Close() error {
	if t.sem != nil {
		return t.sem.Close()
	}
	return nil
}
