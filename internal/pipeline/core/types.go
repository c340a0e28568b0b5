// Package core holds the shared pipeline types so steps can live in their
// own package without import cycles.
package core

import (
	"context"
	"errors"

	"github.com/runsage/runsage/internal/config"
	"github.com/runsage/runsage/internal/resolver"
	"github.com/runsage/runsage/pkg/models"
)

// ErrSkipPipeline indicates that the rest of the pipeline should be skipped
// for logic reasons (e.g. the report is unchanged since the last training
// run). It is not an error condition.
var ErrSkipPipeline = errors.New("skip pipeline")

// Context carries state through the pipeline steps.
// It follows "Effective Go" by using direct field access for simplicity
// within the package.
type Context struct {
	// Base Inputs
	Ctx       context.Context
	Config    *config.Config
	DryRun    bool
	IfChanged bool

	// Mutable State
	// Raw is the fetched report bytes; ReportHash its SHA-256 hex digest
	Raw        []byte
	ReportHash string

	// Cases holds the parsed test cases
	Cases []models.TestCase

	// Pairs holds the synthesized question/answer pairs
	Pairs []models.QAPair

	// Resolver holds the fitted classifier over Pairs
	Resolver *resolver.Resolver

	// Manifest and Stats accumulate the final outputs
	Manifest *models.Manifest
	Stats    *models.TrainStats

	// SkipReason is set when ErrSkipPipeline is returned to explain why
	SkipReason string
}

// Step defines a single unit of work in the pipeline.
type Step interface {
	// Name returns the unique identifier for this step (used in logs)
	Name() string
	// Run executes the step logic.
	// Returning ErrSkipPipeline gracefully stops execution.
	// Returning any other error halts execution and is treated as a failure.
	Run(ctx *Context) error
}
