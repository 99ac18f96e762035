package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mklimuk/life-pilot/pkg/ai"
	"github.com/mklimuk/life-pilot/pkg/config"
	"github.com/mklimuk/life-pilot/pkg/github"
	"github.com/mklimuk/life-pilot/pkg/store"
)

type fakeAnalyzer struct {
	result  *ai.Result
	err     error
	lastReq ai.Request
	calls   int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req ai.Request) (*ai.Result, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeActivity struct {
	summary github.Summary
}

func (f *fakeActivity) Summarize(ctx context.Context, days int) github.Summary {
	return f.summary
}

type fakeHistory struct {
	status  string
	errMsg  string
	scanned int
	added   int
	calls   int
}

func (f *fakeHistory) RecordRun(startedAt time.Time, notesScanned, entriesAdded int, dryRun bool, status, errMsg string) error {
	f.calls++
	f.scanned = notesScanned
	f.added = entriesAdded
	f.status = status
	f.errMsg = errMsg
	return nil
}

func testResult() *ai.Result {
	return &ai.Result{
		TimelineEntries: []store.TimelineEntry{
			{ID: "tl-1", Date: "2024-03-01", Category: "work", Title: "Pilot", Content: "Signed a pilot", Significance: "major"},
		},
		QuadrantUpdates: map[string]map[string]interface{}{
			"work": {"status": "thriving"},
		},
		RightNow: map[string]interface{}{
			"summary":      "A good stretch.",
			"friendlyNote": "Keep it up.",
		},
	}
}

func newTestEngine(t *testing.T, analyzer ai.Analyzer) (*Engine, *store.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.VaultPath = t.TempDir()
	cfg.Days = 14

	journal := filepath.Join(cfg.VaultPath, cfg.JournalFolder)
	if err := os.MkdirAll(journal, 0o755); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(journal, time.Now().Format("2006-01-02")+".md")
	if err := os.WriteFile(entry, []byte("Great day at work today. #work"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg, analyzer, &fakeActivity{}, st), st
}

func TestRunMergesAnalysisIntoStore(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	eng, st := newTestEngine(t, analyzer)
	seed := store.Quadrants{"work": {"name": "Work", "status": "balanced"}}
	if err := st.WriteQuadrants(seed); err != nil {
		t.Fatal(err)
	}

	report, err := eng.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.NotesScanned != 1 || report.JournalEntries != 1 {
		t.Errorf("unexpected scan counts: %+v", report)
	}
	if report.TimelineAdded != 1 {
		t.Errorf("expected 1 timeline entry added, got %d", report.TimelineAdded)
	}
	if report.FriendlyNote != "Keep it up." {
		t.Errorf("unexpected friendly note %q", report.FriendlyNote)
	}

	timeline, err := st.Timeline()
	if err != nil {
		t.Fatal(err)
	}
	if len(timeline) != 1 || timeline[0].ID != "tl-1" {
		t.Errorf("unexpected timeline: %+v", timeline)
	}

	quadrants, err := st.Quadrants()
	if err != nil {
		t.Fatal(err)
	}
	if quadrants.Status("work") != "thriving" {
		t.Errorf("unexpected quadrants: %+v", quadrants)
	}
	if quadrants["work"]["name"] != "Work" {
		t.Errorf("untouched fields should survive the merge: %+v", quadrants["work"])
	}

	rightNow, err := st.RightNow()
	if err != nil {
		t.Fatal(err)
	}
	if rightNow["weekOf"] != time.Now().Format("2006-01-02") {
		t.Errorf("weekOf not stamped: %+v", rightNow)
	}
	if _, ok := rightNow["lastUpdated"]; !ok {
		t.Error("lastUpdated not stamped")
	}

	metadata, err := st.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	if metadata.TotalEntriesProcessed != 1 {
		t.Errorf("expected 1 entry processed, got %d", metadata.TotalEntriesProcessed)
	}
	if metadata.LastProcessed == "" {
		t.Error("lastProcessed not stamped")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	eng, st := newTestEngine(t, analyzer)

	if _, err := eng.Run(context.Background(), Options{}); err != nil {
		t.Fatal(err)
	}
	report, err := eng.Run(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.TimelineAdded != 0 {
		t.Errorf("second run should add nothing, got %d", report.TimelineAdded)
	}

	timeline, err := st.Timeline()
	if err != nil {
		t.Fatal(err)
	}
	if len(timeline) != 1 {
		t.Errorf("expected 1 timeline entry after two runs, got %d", len(timeline))
	}
	metadata, err := st.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	if metadata.TotalEntriesProcessed != 1 {
		t.Errorf("duplicate entries should not count, got %d", metadata.TotalEntriesProcessed)
	}
}

func TestRunEmptyVaultStillAnalyzes(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &ai.Result{
		QuadrantUpdates: map[string]map[string]interface{}{},
		RightNow:        map[string]interface{}{"summary": "Quiet."},
	}}
	cfg := config.Default()
	cfg.VaultPath = filepath.Join(t.TempDir(), "missing")

	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	eng := New(cfg, analyzer, &fakeActivity{}, st)

	report, err := eng.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer should still be invoked, got %d calls", analyzer.calls)
	}
	if report.NotesScanned != 0 {
		t.Errorf("expected 0 notes scanned, got %d", report.NotesScanned)
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	eng, st := newTestEngine(t, analyzer)

	report, err := eng.Run(context.Background(), Options{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if report.TimelineAdded != 1 {
		t.Errorf("dry run should still report planned work, got %d", report.TimelineAdded)
	}

	entries, err := os.ReadDir(st.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run should not write files, found %d", len(entries))
	}
}

func TestRunAnalyzerFailureWritesNothing(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("model unavailable")}
	eng, st := newTestEngine(t, analyzer)

	if _, err := eng.Run(context.Background(), Options{}); err == nil {
		t.Fatal("expected error from failed analysis")
	}

	entries, err := os.ReadDir(st.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed run should not write files, found %d", len(entries))
	}
}

func TestRunProcessesManualEntries(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	eng, st := newTestEngine(t, analyzer)

	entries := []store.ManualEntry{
		{ID: "m1", Category: "travel", Content: "book flights", CreatedAt: "2024-03-01"},
		{ID: "m2", Category: "work", Content: "old", CreatedAt: "2024-01-01", Processed: true},
	}
	if err := st.WriteManualEntries(entries); err != nil {
		t.Fatal(err)
	}

	report, err := eng.Run(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.ManualProcessed != 1 {
		t.Errorf("expected 1 manual entry processed, got %d", report.ManualProcessed)
	}
	if len(analyzer.lastReq.ManualEntries) != 1 || analyzer.lastReq.ManualEntries[0].ID != "m1" {
		t.Errorf("analyzer should only see pending entries: %+v", analyzer.lastReq.ManualEntries)
	}

	pending, err := st.UnprocessedManualEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("entries should be marked processed, %d still pending", len(pending))
	}
}

func TestRunRecordsHistory(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	eng, _ := newTestEngine(t, analyzer)
	history := &fakeHistory{}
	eng.History = history

	if _, err := eng.Run(context.Background(), Options{}); err != nil {
		t.Fatal(err)
	}
	if history.calls != 1 || history.status != "success" {
		t.Errorf("unexpected history record: %+v", history)
	}
	if history.scanned != 1 || history.added != 1 {
		t.Errorf("unexpected history counts: %+v", history)
	}
}

func TestRunRecordsFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("model unavailable")}
	eng, _ := newTestEngine(t, analyzer)
	history := &fakeHistory{}
	eng.History = history

	if _, err := eng.Run(context.Background(), Options{}); err == nil {
		t.Fatal("expected error")
	}
	if history.status != "failed" || history.errMsg == "" {
		t.Errorf("unexpected history record: %+v", history)
	}
}
