package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mklimuk/life-pilot/pkg/store"
)

// ErrValidation marks a response that parsed as JSON but is missing required
// sections. Callers treat it the same as any other analyzer failure: the run
// aborts with nothing written.
var ErrValidation = errors.New("analysis validation failed")

// Result is the structured analysis the reasoning service returns.
type Result struct {
	TimelineEntries      []store.TimelineEntry             `json:"timeline_entries"`
	QuadrantUpdates      map[string]map[string]interface{} `json:"quadrant_updates"`
	RightNow             map[string]interface{}            `json:"right_now"`
	ExtractedGoals       []ExtractedGoal                   `json:"extracted_goals"`
	ExtractedInspiration []store.InspirationItem           `json:"extracted_inspiration"`
}

// ExtractedGoal is a goal the analyzer spotted in the notes.
type ExtractedGoal struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	Timeframe string `json:"timeframe"`
	Progress  *int   `json:"progress,omitempty"`
}

var requiredKeys = []string{"timeline_entries", "quadrant_updates", "right_now"}

var requiredRightNowKeys = []string{
	"summary", "valuesAlignment", "actionables", "celebration", "friendlyNote",
}

// ParseResult strips any markdown code fencing, parses the response as JSON
// and validates its shape.
func ParseResult(text string) (*Result, error) {
	cleaned := cleanJSON(text)

	// Key presence has to be checked on the raw document; a struct decode
	// would silently zero-fill anything missing.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse analysis as JSON: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%w: missing required key %q", ErrValidation, key)
		}
	}

	var rightNow map[string]json.RawMessage
	if err := json.Unmarshal(raw["right_now"], &rightNow); err != nil {
		return nil, fmt.Errorf("%w: right_now is not an object", ErrValidation)
	}
	for _, key := range requiredRightNowKeys {
		if _, ok := rightNow[key]; !ok {
			return nil, fmt.Errorf("%w: missing right_now key %q", ErrValidation, key)
		}
	}

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &result, nil
}

// cleanJSON strips markdown code block fencing an LLM may wrap around its
// JSON output.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
