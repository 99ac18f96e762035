// Package ai turns one run's gathered data into a structured analysis by way
// of an LLM. The Analyzer owns prompt construction and response validation;
// the Generator behind it is swappable (Anthropic, Gemini, or a test fake).
package ai

import (
	"context"
	"fmt"

	"github.com/mklimuk/life-pilot/pkg/config"
	"github.com/mklimuk/life-pilot/pkg/github"
	"github.com/mklimuk/life-pilot/pkg/store"
	"github.com/mklimuk/life-pilot/pkg/vault"
)

// Request bundles everything one analysis call needs.
type Request struct {
	Summary       *vault.Summary
	Activity      github.Summary
	ManualEntries []store.ManualEntry
	Quadrants     store.Quadrants
	Days          int
}

// Analyzer sends a request to the reasoning service and returns the parsed,
// validated result.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// LLMAnalyzer implements Analyzer on top of a text Generator.
type LLMAnalyzer struct {
	gen Generator
	cfg config.Config
}

var _ Analyzer = (*LLMAnalyzer)(nil)

// NewAnalyzer wires an analyzer from a generator and the configuration.
func NewAnalyzer(gen Generator, cfg config.Config) *LLMAnalyzer {
	return &LLMAnalyzer{gen: gen, cfg: cfg}
}

// Analyze builds the prompts, runs the generator once and parses the
// response. There is no retry; a single failure aborts the run.
func (a *LLMAnalyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	system := SystemPrompt(a.cfg)
	prompt := UserPrompt(a.cfg, req.Summary, req.Activity, req.ManualEntries, req.Quadrants, req.Days)

	text, err := a.gen.GenerateText(ctx, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	result, err := ParseResult(text)
	if err != nil {
		return nil, err
	}
	return result, nil
}
