package steps

import (
	"log"

	"github.com/runsage/runsage/internal/pipeline/core"
	"github.com/runsage/runsage/internal/semantic"
)

// Index pushes the synthesized pairs into the semantic backend. The step is
// only part of the pipeline when the resolver backend is "semantic".
type Index struct {
	resolver *semantic.Resolver
}

// NewIndex creates a semantic index step
func NewIndex(resolver *semantic.Resolver) *Index {
	return &Index{resolver: resolver}
}

func (s *Index) Name() string {
	return "index"
}

func (s *Index) Run(ctx *core.Context) error {
	if ctx.DryRun {
		log.Printf("Dry run: skipping semantic index of %d pairs", len(ctx.Pairs))
		return nil
	}

	if err := s.resolver.Index(ctx.Ctx, ctx.Pairs); err != nil {
		return err
	}

	log.Printf("Indexed %d pairs into collection %s", len(ctx.Pairs), ctx.Config.Qdrant.Collection)
	return nil
}
