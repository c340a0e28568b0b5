// Package steps contains the individual units of the training pipeline.
package steps

import (
	"log"

	"github.com/runsage/runsage/internal/artifact"
	"github.com/runsage/runsage/internal/pipeline/core"
	"github.com/runsage/runsage/internal/report"
)

// Fetch retrieves the report from the configured source and parses it into
// test cases. With if-changed enabled it compares the report content hash
// against the last persisted manifest and skips the rest of the pipeline
// when nothing changed.
type Fetch struct {
	client *report.Client
	store  *artifact.Store
}

// NewFetch creates a fetch step
func NewFetch(client *report.Client, store *artifact.Store) *Fetch {
	return &Fetch{client: client, store: store}
}

func (s *Fetch) Name() string {
	return "fetch"
}

func (s *Fetch) Run(ctx *core.Context) error {
	data, err := s.client.Fetch(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Raw = data
	ctx.ReportHash = report.Hash(data)

	if ctx.IfChanged {
		if man, err := s.store.LoadManifest(); err == nil && man.ReportSHA256 == ctx.ReportHash {
			ctx.SkipReason = "report unchanged since last training run"
			return core.ErrSkipPipeline
		}
	}

	cases, err := report.Parse(data)
	if err != nil {
		return err
	}
	ctx.Cases = cases

	log.Printf("Fetched report: %d test cases (%s)", len(cases), ctx.ReportHash[:12])
	return nil
}
