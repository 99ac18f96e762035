package store

import (
	"reflect"
	"sort"
	"testing"
)

func TestMergeTimelineDedupAndSort(t *testing.T) {
	current := []TimelineEntry{
		{ID: "tl-1", Date: "2024-02-01", Title: "old title"},
	}
	incoming := []TimelineEntry{
		{ID: "tl-1", Date: "2024-02-01", Title: "new title"}, // duplicate id, dropped
		{ID: "tl-2", Date: "2024-03-01"},
		{ID: "tl-3", Date: "2024-01-01"},
	}

	next, added := MergeTimeline(current, incoming)
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
	if len(next) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(next))
	}

	// Duplicate ids are dropped, never updated.
	for _, e := range next {
		if e.ID == "tl-1" && e.Title != "old title" {
			t.Errorf("duplicate id must not update the existing entry, got %q", e.Title)
		}
	}

	if !sort.SliceIsSorted(next, func(i, j int) bool { return next[i].Date > next[j].Date }) {
		t.Errorf("timeline not sorted date-descending: %+v", next)
	}
}

func TestMergeTimelineIdempotent(t *testing.T) {
	entry := TimelineEntry{ID: "tl-1", Date: "2024-02-01"}
	once, added := MergeTimeline(nil, []TimelineEntry{entry})
	if added != 1 {
		t.Fatalf("expected 1 added, got %d", added)
	}
	twice, added := MergeTimeline(once, []TimelineEntry{entry})
	if added != 0 {
		t.Errorf("second merge of the same id must add nothing, got %d", added)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("collection changed on repeated merge:\n%+v\n%+v", once, twice)
	}
}

func TestMergeInspirationKeepsOrder(t *testing.T) {
	current := []InspirationItem{{ID: "i-1", Title: "first"}}
	incoming := []InspirationItem{
		{ID: "i-1", Title: "dup"},
		{ID: "i-2", Title: "second"},
	}
	next, added := MergeInspiration(current, incoming)
	if added != 1 {
		t.Errorf("expected 1 added, got %d", added)
	}
	if len(next) != 2 || next[0].ID != "i-1" || next[1].ID != "i-2" {
		t.Errorf("unexpected collection: %+v", next)
	}
	if next[0].Title != "first" {
		t.Error("duplicate id must not overwrite existing item")
	}
}

func TestMergeQuadrantsShallowUpdate(t *testing.T) {
	current := Quadrants{
		"work":   {"name": "Work", "status": "needs_attention", "color": "#9B59B6"},
		"travel": {"name": "Travel", "status": "dormant"},
	}
	updates := map[string]map[string]interface{}{
		"work":    {"status": "thriving", "recentHighlight": "pilot signed"},
		"unknown": {"status": "thriving"}, // not a known quadrant; ignored
	}

	next := MergeQuadrants(current, updates)

	if next.Status("work") != "thriving" {
		t.Errorf("expected work updated to thriving, got %q", next.Status("work"))
	}
	if next["work"]["name"] != "Work" || next["work"]["color"] != "#9B59B6" {
		t.Errorf("untouched fields must survive the update: %+v", next["work"])
	}
	if next["work"]["recentHighlight"] != "pilot signed" {
		t.Error("new fields from the update must be merged in")
	}
	if _, ok := next["unknown"]; ok {
		t.Error("unknown quadrant keys must be ignored, not created")
	}
	if next.Status("travel") != "dormant" {
		t.Error("quadrants absent from the update must be left untouched")
	}

	// The input collection must not be mutated.
	if current.Status("work") != "needs_attention" {
		t.Error("merge mutated its input")
	}
}

func TestAddGoalDedupByText(t *testing.T) {
	goals := Goals{
		NearFuture: []Goal{{ID: "g-1", Text: "Run a pilot"}},
	}

	if goals.AddGoal(Goal{ID: "g-9", Text: "Run a pilot"}, "near") {
		t.Error("identical text in the same bucket must not grow it")
	}
	if len(goals.NearFuture) != 1 {
		t.Fatalf("bucket grew: %+v", goals.NearFuture)
	}

	// Same text in the other bucket is allowed; buckets are independent.
	if !goals.AddGoal(Goal{ID: "g-2", Text: "Run a pilot"}, "far") {
		t.Error("same text in the other bucket should be accepted")
	}
}

func TestAddGoalProgressInitialization(t *testing.T) {
	var goals Goals

	if !goals.AddGoal(Goal{ID: "g-1", Text: "near goal"}, "near") {
		t.Fatal("expected near goal added")
	}
	if goals.NearFuture[0].Progress == nil || *goals.NearFuture[0].Progress != 0 {
		t.Error("near-future goals must start with progress 0")
	}

	progress := 50
	if !goals.AddGoal(Goal{ID: "g-2", Text: "far goal", Progress: &progress}, "far") {
		t.Fatal("expected far goal added")
	}
	if goals.FarFuture[0].Progress != nil {
		t.Error("far-future goals must not carry progress")
	}
}
