// Package pipeline orchestrates a single diagram generation: provider
// detection, prompt composition, the model call, response parsing, and icon
// path repair.
package pipeline

import (
	"context"
	"fmt"

	"archcanvas/internal/diagram"
	"archcanvas/internal/icons"
	"archcanvas/internal/llm"
	"archcanvas/internal/prompt"
	"archcanvas/internal/providers"
)

// Stage names published to watchers during a run.
const (
	StageDetecting  = "detecting"
	StageComposing  = "composing"
	StageGenerating = "generating"
	StageValidating = "validating"
	StageDone       = "done"
	StageFailed     = "failed"
)

// GenerateIn is the request side of one generation.
type GenerateIn struct {
	// Description is the free-text architecture description.
	Description string
	// Providers, when non-empty, bypasses detection (user intent wins).
	Providers []string
}

// GenerateOut is the validated result handed back to the caller.
type GenerateOut struct {
	Diagram   diagram.Payload `json:"diagram"`
	Report    diagram.Report  `json:"report"`
	Providers []string        `json:"providers"`
}

// Generator runs the generation pipeline against a shared read-only icon
// index. Safe for concurrent use; each Run carries no cross-request state.
type Generator struct {
	LLM   llm.Client
	Index *icons.Index
	// Notify optionally receives stage transitions for progress reporting.
	Notify func(stage string)
}

func (g *Generator) notify(stage string) {
	if g.Notify != nil {
		g.Notify(stage)
	}
}

// Run executes detect -> compose -> generate -> parse -> repair. Model and
// parse failures surface as errors; per-node icon problems are repaired or
// reported, never fatal.
func (g *Generator) Run(ctx context.Context, in GenerateIn) (GenerateOut, error) {
	g.notify(StageDetecting)
	selected := providers.Detect(in.Description, in.Providers)

	g.notify(StageComposing)
	instruction := prompt.Compose(in.Description, selected, g.Index)

	g.notify(StageGenerating)
	raw, err := g.LLM.GenerateText(ctx, instruction)
	if err != nil {
		g.notify(StageFailed)
		return GenerateOut{}, fmt.Errorf("generate: %w", err)
	}

	g.notify(StageValidating)
	payload, err := diagram.Parse(raw)
	if err != nil {
		g.notify(StageFailed)
		return GenerateOut{}, err
	}
	repaired, report := diagram.Repair(payload, g.Index)

	g.notify(StageDone)
	return GenerateOut{Diagram: repaired, Report: report, Providers: selected}, nil
}
