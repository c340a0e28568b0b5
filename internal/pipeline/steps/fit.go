package steps

import (
	"fmt"
	"log"

	"github.com/runsage/runsage/internal/pipeline/core"
	"github.com/runsage/runsage/internal/resolver"
)

// Fit trains the bag-of-words classifier over the synthesized pairs. A
// report with no test cases fails here, before anything is persisted, so an
// existing artifact set survives a bad fetch.
type Fit struct{}

// NewFit creates a fit step
func NewFit() *Fit {
	return &Fit{}
}

func (s *Fit) Name() string {
	return "fit"
}

func (s *Fit) Run(ctx *core.Context) error {
	if len(ctx.Cases) == 0 {
		return fmt.Errorf("%w: report contains no test cases", resolver.ErrInsufficientTrainingData)
	}

	res, err := resolver.Train(ctx.Pairs, ctx.Config.Resolver.Alpha)
	if err != nil {
		return err
	}
	ctx.Resolver = res

	log.Printf("Fitted classifier: %d answers, %d vocabulary terms",
		len(res.Answers()), res.VocabularySize())
	return nil
}
