package store

// TimelineEntry is one moment on the life timeline. The collection keeps
// unique ids, sorted by date descending.
type TimelineEntry struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Category     string `json:"category"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	ImageURL     string `json:"imageUrl,omitempty"`
	SourceNote   string `json:"sourceNote,omitempty"`
	Significance string `json:"significance"`
}

// Quadrants maps quadrant key to its fields. Fields are kept schemaless on
// purpose: analyzer updates merge shallowly and may carry metrics, highlights
// or stats the store does not interpret.
type Quadrants map[string]map[string]interface{}

// Status returns a quadrant's status field, or "" when absent.
func (q Quadrants) Status(key string) string {
	if fields, ok := q[key]; ok {
		if s, ok := fields["status"].(string); ok {
			return s
		}
	}
	return ""
}

// Goal is a tracked goal in one of the two timeframe buckets.
type Goal struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Category    string `json:"category,omitempty"`
	Completed   bool   `json:"completed"`
	Progress    *int   `json:"progress,omitempty"` // near-future goals only
	CreatedAt   string `json:"createdAt"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// Goals holds the two timeframe buckets. Each bucket dedupes on exact text.
type Goals struct {
	NearFuture []Goal `json:"nearFuture"`
	FarFuture  []Goal `json:"farFuture"`
}

// InspirationItem is a collected piece of inspiration, deduplicated by id.
type InspirationItem struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Source   string `json:"source,omitempty"`
	AddedAt  string `json:"addedAt"`
}

// ManualEntry is user input created outside the pipeline. It is read as
// unprocessed input, flipped to processed after a successful merge, and
// physically removed by compaction.
type ManualEntry struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Link      string `json:"link,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	Processed bool   `json:"processed"`
}

// RightNow is the current-state snapshot. The analyzer decides most of its
// shape; the engine stamps weekOf, lastUpdated and quadrantStatuses.
type RightNow map[string]interface{}

// Metadata records processing bookkeeping.
type Metadata struct {
	LastProcessed         string `json:"lastProcessed"`
	LastNoteScanned       string `json:"lastNoteScanned"`
	TotalEntriesProcessed int    `json:"totalEntriesProcessed"`
	Version               string `json:"version"`
}
