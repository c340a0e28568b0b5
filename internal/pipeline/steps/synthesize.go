package steps

import (
	"log"

	"github.com/runsage/runsage/internal/pipeline/core"
	"github.com/runsage/runsage/internal/synth"
)

// Synthesize derives the question/answer pairs from the parsed test cases.
type Synthesize struct{}

// NewSynthesize creates a synthesize step
func NewSynthesize() *Synthesize {
	return &Synthesize{}
}

func (s *Synthesize) Name() string {
	return "synthesize"
}

func (s *Synthesize) Run(ctx *core.Context) error {
	ctx.Pairs = synth.Generate(ctx.Cases)
	log.Printf("Synthesized %d question/answer pairs", len(ctx.Pairs))
	return nil
}
