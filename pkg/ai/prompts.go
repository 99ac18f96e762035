package ai

import (
	"fmt"
	"strings"

	"github.com/mklimuk/life-pilot/pkg/config"
	"github.com/mklimuk/life-pilot/pkg/github"
	"github.com/mklimuk/life-pilot/pkg/store"
	"github.com/mklimuk/life-pilot/pkg/vault"
)

// SystemPrompt returns the analysis system prompt with the configured values
// and quadrant tables filled in.
func SystemPrompt(cfg config.Config) string {
	var values strings.Builder
	for _, v := range cfg.Values {
		fmt.Fprintf(&values, "- %s\n", v)
	}
	var quadrants strings.Builder
	for _, q := range cfg.Quadrants {
		fmt.Fprintf(&quadrants, "- %s: %s\n", q.Name, strings.Join(q.Tags, ", "))
	}

	return fmt.Sprintf(`You are a supportive life companion AI analyzing personal notes and activity to surface meaningful patterns.

## Your role:
1. Analyze content and extract meaningful moments for each life quadrant
2. Identify patterns, achievements, and areas needing attention
3. Provide supportive feedback (like a wise friend, not a productivity app)
4. Be concise - quality over quantity
5. Bias towards recent content (more relevant)

## Core values:
%s
## The life quadrants:
%s
## Balance awareness:
Watch for overwork signals like "overdoing it", "working late", "quality depleting",
a lack of training entries, or travel dreams being neglected.

Be warm, celebrate wins, gently notice drift, never guilt-trip.`, values.String(), quadrants.String())
}

// UserPrompt builds the analysis prompt from one run's gathered data. Journal
// entries come first and each note's content is truncated to the configured
// preview length to bound prompt size.
func UserPrompt(cfg config.Config, summary *vault.Summary, activity github.Summary, manual []store.ManualEntry, quadrants store.Quadrants, days int) string {
	var journals, notes strings.Builder
	for _, note := range summary.Notes {
		section := &notes
		if note.IsJournal {
			section = &journals
		}
		category := note.Category
		if category == "" {
			category = vault.Uncategorized
		}
		fmt.Fprintf(section, "\n### %s (%s)\nCategory: %s\nContent:\n%s\n",
			note.Filename, note.Date().Format("2006-01-02"), category, preview(note.Content, cfg.ContentPreview))
	}
	journalText := journals.String()
	if journalText == "" {
		journalText = "No recent journal entries found."
	}
	notesText := notes.String()
	if notesText == "" {
		notesText = "No recent notes found."
	}

	githubText := fmt.Sprintf("Commits: %d\nActive repos: %s\nCurrent streak: %d days\nRecent commit messages: %s\n",
		activity.Commits,
		strings.Join(activity.Repos, ", "),
		activity.Streak,
		strings.Join(limitStrings(activity.RecentMessages, 5), ", "))

	var manualText strings.Builder
	for _, entry := range manual {
		if !entry.Processed {
			fmt.Fprintf(&manualText, "\n- [%s] %s", entry.Category, entry.Content)
		}
	}
	manualSection := manualText.String()
	if manualSection == "" {
		manualSection = "No pending manual entries."
	}

	var quadrantText strings.Builder
	for _, q := range cfg.Quadrants {
		status := quadrants.Status(q.Key)
		if status == "" {
			status = "unknown"
		}
		fmt.Fprintf(&quadrantText, "\n- %s: %s", q.Name, status)
	}

	moodText := "Not available"
	if summary.Mood != nil {
		moodText = fmt.Sprintf("Current mood: %s\nMood score: %.2f (-1 to 1 scale)\nPositive signals: %d\nStress signals: %d\nBalance mentions: %d\n",
			summary.Mood.Mood, summary.Mood.MoodScore,
			summary.Mood.PositiveSignals, summary.Mood.StressSignals, summary.Mood.BalanceSignals)
	}

	return fmt.Sprintf(`Please analyze the following data from the past %d days and provide a structured JSON response.

## Recent Journal Entries (prioritize these for mood/thoughts):
%s

## Recent Notes:
%s

## GitHub Activity:
%s

## Manual Entries:
%s

## Current Quadrant Status:
%s

## Mood Analysis from Journals:
%s

---

Please respond with a JSON object containing:

1. "timeline_entries": Array of new timeline entries (max 5-7, focus on significant moments):
   - id: unique string (use format "tl-{timestamp}-{index}")
   - date: ISO date string
   - category: one of %s
   - title: short descriptive title (max 50 chars)
   - content: 1-2 sentence description (concise!)
   - significance: "minor", "notable", or "major"

2. "quadrant_updates": Object with updates for each quadrant:
   - status: "thriving", "balanced", "needs_attention", or "dormant"
   - lastActivity: ISO date of most recent activity
   - activityPulse: boolean (true if active in past week)
   - recentHighlight: one-liner about what's happening
   - metrics: object with 2-3 relevant metrics only

3. "right_now": Current state snapshot:
   - summary: 2-3 sentence overview (be concise, not overwhelming)
   - valuesAlignment: object with score (0-100), livingWell array (max 3), needsAttention array (max 2), note
   - actionables: array of 2-4 suggestions with id, text, priority, effort, impact, quadrant
   - celebration: highlight one win (even small ones count!)
   - friendlyNote: warm, supportive message (max 2 sentences)
   - balanceCheck: object with mood, recommendation (if overworking detected)

4. "extracted_goals": Array of goals mentioned (max 5 near, 5 far):
   - id: unique string
   - text: the goal (concise)
   - category: quadrant category
   - timeframe: "near" or "far"
   - progress: 0-100 if estimable

5. "extracted_inspiration": Array of inspiration items (max 5):
   - id: unique string
   - category: "movement", "innovation", "travel", "philosophy", or "people"
   - type: "video", "quote", "profile", or "idea"
   - title: descriptive title
   - content: the insight/quote/link
   - source: where it came from (note title)

Remember: Be CONCISE. Quality over quantity. Bias towards recent content.

Respond ONLY with valid JSON, no explanation text.`,
		days, journalText, notesText, githubText, manualSection,
		quadrantText.String(), moodText, quotedKeys(cfg.QuadrantKeys()))
}

func preview(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit])
}

func limitStrings(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func quotedKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return strings.Join(quoted, ", ")
}
