package steps

import (
	"log"
	"time"

	"github.com/runsage/runsage/internal/artifact"
	"github.com/runsage/runsage/internal/pipeline/core"
	"github.com/runsage/runsage/pkg/models"
)

// Persist writes the trained resolver and its manifest to the artifact
// directory. The manifest records the report hash and the latest run
// timestamp so serving never has to re-fetch the report.
type Persist struct {
	store *artifact.Store
}

// NewPersist creates a persist step
func NewPersist(store *artifact.Store) *Persist {
	return &Persist{store: store}
}

func (s *Persist) Name() string {
	return "persist"
}

func (s *Persist) Run(ctx *core.Context) error {
	summary := models.Summarize(ctx.Cases)

	ctx.Manifest = &models.Manifest{
		ReportSHA256: ctx.ReportHash,
		TrainedAt:    time.Now().UTC(),
		Backend:      ctx.Config.Resolver.Backend,
		Cases:        len(ctx.Cases),
		Pairs:        len(ctx.Pairs),
		Answers:      len(ctx.Resolver.Answers()),
		Vocabulary:   ctx.Resolver.VocabularySize(),
		LastRun:      summary.LastRun,
	}

	if ctx.DryRun {
		log.Printf("Dry run: skipping artifact write to %s", s.store.Dir())
		return nil
	}

	if err := s.store.Save(ctx.Resolver, ctx.Manifest); err != nil {
		return err
	}

	log.Printf("Persisted artifacts to %s", s.store.Dir())
	return nil
}
