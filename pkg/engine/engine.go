// Package engine orchestrates one processing run: gather the current state,
// scan the vault, fetch activity, ask the analyzer for insights, and merge the
// result into the store as one staged commit.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mklimuk/life-pilot/pkg/ai"
	"github.com/mklimuk/life-pilot/pkg/config"
	"github.com/mklimuk/life-pilot/pkg/github"
	"github.com/mklimuk/life-pilot/pkg/store"
	"github.com/mklimuk/life-pilot/pkg/vault"
)

// ActivityFetcher supplies the activity summary for the window. Implemented
// by github.Client and by deterministic fakes in tests.
type ActivityFetcher interface {
	Summarize(ctx context.Context, days int) github.Summary
}

// History records finished runs. Implemented by db.Repository; optional.
type History interface {
	RecordRun(startedAt time.Time, notesScanned, entriesAdded int, dryRun bool, status, errMsg string) error
}

// Engine runs the pipeline. Runs are sequential; nothing here is safe for
// concurrent invocations against the same data directory.
type Engine struct {
	cfg      config.Config
	scanner  *vault.Scanner
	builder  *vault.SummaryBuilder
	analyzer ai.Analyzer
	activity ActivityFetcher
	store    *store.Store

	// History is optional; when set, every run outcome is recorded.
	History History
}

// New wires an engine from its collaborators.
func New(cfg config.Config, analyzer ai.Analyzer, activity ActivityFetcher, st *store.Store) *Engine {
	return &Engine{
		cfg:      cfg,
		scanner:  vault.NewScanner(cfg.VaultPath, cfg.JournalFolder, cfg.AreaFolder),
		builder:  vault.NewSummaryBuilder(cfg),
		analyzer: analyzer,
		activity: activity,
		store:    st,
	}
}

// Options tune one run.
type Options struct {
	Days   int  // day window; 0 means the configured default
	DryRun bool // compute everything, write nothing
}

// Report describes what a run did, or would have done in dry-run mode.
type Report struct {
	Started          time.Time
	DryRun           bool
	NotesScanned     int
	JournalEntries   int
	TimelineAdded    int
	QuadrantsUpdated int
	GoalsAdded       int
	InspirationAdded int
	ManualProcessed  int
	Mood             string
	FriendlyNote     string
}

// Run executes one processing run. On analyzer or validation failure nothing
// is written. The writes themselves are staged: every next-state is computed
// in memory first, then persisted in a fixed order through atomic renames,
// which bounds the window in which a crash can leave mixed state.
func (e *Engine) Run(ctx context.Context, opts Options) (*Report, error) {
	started := time.Now()
	report, err := e.run(ctx, started, opts)

	if e.History != nil {
		status := "success"
		errMsg := ""
		scanned, added := 0, 0
		if report != nil {
			scanned, added = report.NotesScanned, report.TimelineAdded
		}
		if err != nil {
			status = "failed"
			errMsg = err.Error()
		}
		if histErr := e.History.RecordRun(started, scanned, added, opts.DryRun, status, errMsg); histErr != nil {
			log.Printf("engine: failed to record run: %v", histErr)
		}
	}
	return report, err
}

func (e *Engine) run(ctx context.Context, started time.Time, opts Options) (*Report, error) {
	days := opts.Days
	if days <= 0 {
		days = e.cfg.Days
	}

	// Gather current store contents.
	quadrants, err := e.store.Quadrants()
	if err != nil {
		return nil, err
	}
	timeline, err := e.store.Timeline()
	if err != nil {
		return nil, err
	}
	goals, err := e.store.Goals()
	if err != nil {
		return nil, err
	}
	inspiration, err := e.store.Inspiration()
	if err != nil {
		return nil, err
	}
	metadata, err := e.store.Metadata()
	if err != nil {
		return nil, err
	}
	pending, err := e.store.UnprocessedManualEntries()
	if err != nil {
		return nil, err
	}

	// Scan and summarize.
	notes, err := e.scanner.Recent(days)
	if err != nil {
		return nil, fmt.Errorf("vault scan failed: %w", err)
	}
	summary := e.builder.Build(notes)
	log.Printf("engine: scanned %d notes (%d journal, %d other)",
		summary.TotalNotes, summary.JournalEntries, summary.OtherNotes)

	activity := e.activity.Summarize(ctx, days)

	// One analysis call; any failure aborts before a single write.
	result, err := e.analyzer.Analyze(ctx, ai.Request{
		Summary:       summary,
		Activity:      activity,
		ManualEntries: pending,
		Quadrants:     quadrants,
		Days:          days,
	})
	if err != nil {
		return nil, err
	}

	// Stage every next-state in memory.
	now := time.Now()
	today := now.Format("2006-01-02")

	nextTimeline, timelineAdded := store.MergeTimeline(timeline, result.TimelineEntries)
	nextQuadrants := store.MergeQuadrants(quadrants, result.QuadrantUpdates)

	rightNow := store.RightNow{}
	for k, v := range result.RightNow {
		rightNow[k] = v
	}
	rightNow["weekOf"] = today
	rightNow["lastUpdated"] = now.Format(time.RFC3339)
	statuses := map[string]string{}
	for key := range result.QuadrantUpdates {
		status := nextQuadrants.Status(key)
		if status == "" {
			status = "needs_attention"
		}
		statuses[key] = status
	}
	rightNow["quadrantStatuses"] = statuses

	nextGoals := goals
	goalsAdded := 0
	for _, extracted := range result.ExtractedGoals {
		goal := store.Goal{
			ID:        extracted.ID,
			Text:      extracted.Text,
			Category:  extracted.Category,
			Progress:  extracted.Progress,
			CreatedAt: today,
		}
		if nextGoals.AddGoal(goal, extracted.Timeframe) {
			goalsAdded++
		}
	}

	incoming := make([]store.InspirationItem, len(result.ExtractedInspiration))
	for i, item := range result.ExtractedInspiration {
		item.AddedAt = today
		incoming[i] = item
	}
	nextInspiration, inspirationAdded := store.MergeInspiration(inspiration, incoming)

	metadata.LastProcessed = now.Format(time.RFC3339)
	metadata.TotalEntriesProcessed += timelineAdded
	if len(summary.Notes) > 0 {
		metadata.LastNoteScanned = summary.Notes[0].Filename
	}

	report := &Report{
		Started:          started,
		DryRun:           opts.DryRun,
		NotesScanned:     summary.TotalNotes,
		JournalEntries:   summary.JournalEntries,
		TimelineAdded:    timelineAdded,
		QuadrantsUpdated: len(result.QuadrantUpdates),
		GoalsAdded:       goalsAdded,
		InspirationAdded: inspirationAdded,
		ManualProcessed:  len(pending),
	}
	if summary.Mood != nil {
		report.Mood = summary.Mood.Mood
	}
	if note, ok := result.RightNow["friendlyNote"].(string); ok {
		report.FriendlyNote = note
	}

	if opts.DryRun {
		log.Printf("engine: dry run, would add %d timeline entries and update %d quadrants",
			timelineAdded, len(result.QuadrantUpdates))
		return report, nil
	}

	// Persist in a fixed order. A crash mid-sequence still leaves mixed
	// state; this is the accepted residual window.
	if err := e.store.WriteTimeline(nextTimeline); err != nil {
		return report, err
	}
	if err := e.store.WriteQuadrants(nextQuadrants); err != nil {
		return report, err
	}
	if err := e.store.WriteRightNow(rightNow); err != nil {
		return report, err
	}
	if err := e.store.WriteGoals(nextGoals); err != nil {
		return report, err
	}
	if err := e.store.WriteInspiration(nextInspiration); err != nil {
		return report, err
	}
	if len(pending) > 0 {
		ids := make([]string, len(pending))
		for i, entry := range pending {
			ids[i] = entry.ID
		}
		if err := e.store.MarkManualEntriesProcessed(ids); err != nil {
			return report, err
		}
	}
	if err := e.store.WriteMetadata(metadata); err != nil {
		return report, err
	}

	log.Printf("engine: added %d timeline entries, %d goals, %d inspiration items",
		timelineAdded, goalsAdded, inspirationAdded)
	return report, nil
}
