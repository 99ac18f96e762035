package vault

import (
	"math"
	"strings"

	"github.com/mklimuk/life-pilot/pkg/config"
)

// Mood labels produced by the scorer.
const (
	MoodEnergized = "energized"
	MoodStressed  = "stressed"
	MoodBalanced  = "balanced"
)

// MoodScorer scores affect from journal text by counting occurrences of
// configured word lists. Matching is substring containment, not word-boundary
// tokenization; "hard" inside "hardware" counts. That is a known, accepted
// looseness of the heuristic.
type MoodScorer struct {
	positive []string
	stress   []string
	balance  []string
}

// NewMoodScorer builds a scorer from the configured word lists.
func NewMoodScorer(cfg config.Config) *MoodScorer {
	return &MoodScorer{
		positive: cfg.PositiveWords,
		stress:   cfg.StressWords,
		balance:  cfg.BalanceWords,
	}
}

// Score analyzes the given journal text. Empty text yields the zero-valued
// balanced result, which is a valid state, not an error.
func (m *MoodScorer) Score(text string) MoodResult {
	if strings.TrimSpace(text) == "" {
		return MoodResult{Mood: MoodBalanced}
	}

	lower := strings.ToLower(text)
	positive := countContained(lower, m.positive)
	stress := countContained(lower, m.stress)
	balance := countContained(lower, m.balance)

	// Denominator is count+1, so the score stays strictly inside (-1, 1).
	score := float64(positive-stress) / float64(positive+stress+1)
	score = math.Round(score*100) / 100

	mood := MoodBalanced
	switch {
	case score > 0.3:
		mood = MoodEnergized
	case score < -0.3:
		mood = MoodStressed
	}

	return MoodResult{
		Mood:            mood,
		MoodScore:       score,
		PositiveSignals: positive,
		StressSignals:   stress,
		BalanceSignals:  balance,
	}
}

func countContained(text string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			count++
		}
	}
	return count
}
