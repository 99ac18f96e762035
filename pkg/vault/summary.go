package vault

import (
	"strings"

	"github.com/mklimuk/life-pilot/pkg/config"
)

// Uncategorized is the bucket for notes no quadrant claims.
const Uncategorized = "uncategorized"

// SummaryBuilder combines scanner output with per-note extraction and mood
// scoring into the single snapshot the analyzer consumes.
type SummaryBuilder struct {
	extractor  *Extractor
	mood       *MoodScorer
	noteLimit  int
	moodWindow int
	quadrants  []string
}

// NewSummaryBuilder wires the builder from the configuration.
func NewSummaryBuilder(cfg config.Config) *SummaryBuilder {
	return &SummaryBuilder{
		extractor:  NewExtractor(cfg),
		mood:       NewMoodScorer(cfg),
		noteLimit:  cfg.NoteLimit,
		moodWindow: cfg.MoodJournalWindow,
		quadrants:  cfg.QuadrantKeys(),
	}
}

// Build produces the summary for one scan. Journal entries are ordered first,
// the total is capped at the configured note limit, and counts are reported
// even when everything is empty.
func (b *SummaryBuilder) Build(notes []*Note) *Summary {
	var journals, others []*Note
	for _, n := range notes {
		if n.IsJournal {
			journals = append(journals, n)
		} else {
			others = append(others, n)
		}
	}

	ordered := make([]*Note, 0, len(notes))
	ordered = append(ordered, journals...)
	ordered = append(ordered, others...)

	byCategory := make(map[string][]*Note, len(b.quadrants)+1)
	for _, key := range b.quadrants {
		byCategory[key] = nil
	}
	byCategory[Uncategorized] = nil

	tagSet := make(map[string]bool)
	peopleSet := make(map[string]bool)
	var allTags, allPeople []string

	for _, note := range ordered {
		note.Tags = b.extractor.Tags(note)
		note.People = b.extractor.People(note.Content)
		note.Category = b.extractor.Categorize(note)

		for _, t := range note.Tags {
			if !tagSet[t] {
				tagSet[t] = true
				allTags = append(allTags, t)
			}
		}
		for _, p := range note.People {
			if !peopleSet[p] {
				peopleSet[p] = true
				allPeople = append(allPeople, p)
			}
		}

		bucket := note.Category
		if bucket == "" {
			bucket = Uncategorized
		}
		byCategory[bucket] = append(byCategory[bucket], note)
	}

	var mood *MoodResult
	if len(journals) > 0 {
		window := journals
		if len(window) > b.moodWindow {
			window = window[:b.moodWindow]
		}
		texts := make([]string, len(window))
		for i, j := range window {
			texts[i] = j.Content
		}
		result := b.mood.Score(strings.Join(texts, "\n"))
		mood = &result
	}

	// Only the most recent slice is forwarded to the analyzer; the buckets
	// and unions above still cover everything scanned.
	forwarded := ordered
	if len(forwarded) > b.noteLimit {
		forwarded = forwarded[:b.noteLimit]
	}

	return &Summary{
		TotalNotes:     len(notes),
		JournalEntries: len(journals),
		OtherNotes:     len(others),
		Notes:          forwarded,
		ByCategory:     byCategory,
		AllTags:        allTags,
		AllPeople:      allPeople,
		Mood:           mood,
	}
}
