package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/mklimuk/life-pilot/pkg/config"
	"github.com/mklimuk/life-pilot/pkg/github"
	"github.com/mklimuk/life-pilot/pkg/store"
	"github.com/mklimuk/life-pilot/pkg/vault"
)

func TestSystemPromptIncludesValuesAndQuadrants(t *testing.T) {
	cfg := config.Default()
	prompt := SystemPrompt(cfg)
	for _, v := range cfg.Values {
		if !strings.Contains(prompt, v) {
			t.Errorf("system prompt missing value %q", v)
		}
	}
	for _, q := range cfg.Quadrants {
		if !strings.Contains(prompt, q.Name) {
			t.Errorf("system prompt missing quadrant %q", q.Name)
		}
	}
}

func TestUserPromptSections(t *testing.T) {
	cfg := config.Default()
	cfg.ContentPreview = 20

	long := strings.Repeat("x", 100)
	summary := &vault.Summary{
		Notes: []*vault.Note{
			{Filename: "2024-03-01.md", IsJournal: true, EntryDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Content: long, Category: "work"},
			{Filename: "ideas.md", Modified: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Content: "short note"},
		},
		Mood: &vault.MoodResult{Mood: vault.MoodEnergized, MoodScore: 0.5},
	}
	activity := github.Summary{Commits: 7, Repos: []string{"life-pilot"}, Streak: 3}
	manual := []store.ManualEntry{
		{ID: "m1", Category: "travel", Content: "book flights"},
		{ID: "m2", Category: "work", Content: "already done", Processed: true},
	}
	quadrants := store.Quadrants{"work": {"status": "thriving"}}

	prompt := UserPrompt(cfg, summary, activity, manual, quadrants, 14)

	if !strings.Contains(prompt, "past 14 days") {
		t.Error("prompt missing day window")
	}
	if !strings.Contains(prompt, "2024-03-01.md") {
		t.Error("prompt missing journal entry")
	}
	if !strings.Contains(prompt, "ideas.md") {
		t.Error("prompt missing note")
	}
	if strings.Contains(prompt, long) {
		t.Error("note content should be truncated to the preview length")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 20)) {
		t.Error("prompt missing truncated note content")
	}
	if !strings.Contains(prompt, "Commits: 7") {
		t.Error("prompt missing github activity")
	}
	if !strings.Contains(prompt, "book flights") {
		t.Error("prompt missing pending manual entry")
	}
	if strings.Contains(prompt, "already done") {
		t.Error("processed manual entries should be excluded")
	}
	if !strings.Contains(prompt, "thriving") {
		t.Error("prompt missing quadrant status")
	}
	if !strings.Contains(prompt, "energized") {
		t.Error("prompt missing mood analysis")
	}
	if !strings.Contains(prompt, `"timeline_entries"`) {
		t.Error("prompt missing response format instructions")
	}
}

func TestUserPromptEmptyData(t *testing.T) {
	cfg := config.Default()
	prompt := UserPrompt(cfg, &vault.Summary{}, github.Summary{}, nil, store.Quadrants{}, 7)

	if !strings.Contains(prompt, "No recent journal entries found.") {
		t.Error("prompt missing empty journal placeholder")
	}
	if !strings.Contains(prompt, "No recent notes found.") {
		t.Error("prompt missing empty notes placeholder")
	}
	if !strings.Contains(prompt, "No pending manual entries.") {
		t.Error("prompt missing empty manual placeholder")
	}
	if !strings.Contains(prompt, "Not available") {
		t.Error("prompt missing mood placeholder")
	}
}
