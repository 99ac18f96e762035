package store

import "sort"

// MergeTimeline appends the incoming entries whose ids are not already
// present, then re-sorts the whole collection by date descending. Existing
// entries are never updated; a duplicate id is simply dropped. Returns the
// next collection and how many entries were actually added.
func MergeTimeline(current, incoming []TimelineEntry) ([]TimelineEntry, int) {
	existing := make(map[string]bool, len(current))
	for _, e := range current {
		existing[e.ID] = true
	}

	next := make([]TimelineEntry, len(current), len(current)+len(incoming))
	copy(next, current)

	added := 0
	for _, e := range incoming {
		if existing[e.ID] {
			continue
		}
		existing[e.ID] = true
		next = append(next, e)
		added++
	}

	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Date > next[j].Date
	})
	return next, added
}

// MergeInspiration appends incoming items whose ids are new. Unlike the
// timeline there is no re-sort; arrival order stands.
func MergeInspiration(current, incoming []InspirationItem) ([]InspirationItem, int) {
	existing := make(map[string]bool, len(current))
	for _, item := range current {
		existing[item.ID] = true
	}

	next := make([]InspirationItem, len(current), len(current)+len(incoming))
	copy(next, current)

	added := 0
	for _, item := range incoming {
		if existing[item.ID] {
			continue
		}
		existing[item.ID] = true
		next = append(next, item)
		added++
	}
	return next, added
}

// MergeQuadrants applies a shallow field update to each quadrant named in the
// update map. Quadrant keys not present in the current collection are
// ignored; quadrants absent from the update are left untouched.
func MergeQuadrants(current Quadrants, updates map[string]map[string]interface{}) Quadrants {
	next := make(Quadrants, len(current))
	for key, fields := range current {
		copied := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		next[key] = copied
	}

	for key, update := range updates {
		fields, ok := next[key]
		if !ok {
			continue
		}
		for k, v := range update {
			fields[k] = v
		}
	}
	return next
}

// AddGoal appends a goal to the timeframe bucket unless an entry with the
// identical text already lives there. Near-future goals get a progress field
// initialized to zero when none is set; far-future goals carry none. Reports
// whether the bucket grew.
func (g *Goals) AddGoal(goal Goal, timeframe string) bool {
	bucket := &g.NearFuture
	if timeframe == "far" {
		bucket = &g.FarFuture
	}

	for _, existing := range *bucket {
		if existing.Text == goal.Text {
			return false
		}
	}

	if timeframe == "far" {
		goal.Progress = nil
	} else if goal.Progress == nil {
		zero := 0
		goal.Progress = &zero
	}

	*bucket = append(*bucket, goal)
	return true
}
