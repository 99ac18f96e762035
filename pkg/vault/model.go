package vault

import "time"

// Source classifies where in the vault a note lives.
type Source string

const (
	SourceJournal Source = "journal"
	SourceArea    Source = "area"
	SourceNotes   Source = "notes"
)

// Note represents a parsed markdown note. Once yielded by the scanner it is
// not mutated again within a run, except for the derived fields which the
// summary builder fills in.
type Note struct {
	Path        string
	Filename    string
	Content     string
	Frontmatter map[string]interface{}
	Modified    time.Time

	IsJournal bool
	EntryDate time.Time // journal notes only; zero otherwise
	Source    Source

	// Derived by the extractor.
	Tags     []string
	People   []string
	Category string
}

// Date returns the date that orders this note: the journal entry date when
// present, the modification time otherwise.
func (n *Note) Date() time.Time {
	if n.IsJournal && !n.EntryDate.IsZero() {
		return n.EntryDate
	}
	return n.Modified
}

// MoodResult is the outcome of scoring journal text for affect.
type MoodResult struct {
	Mood            string  `json:"mood"`
	MoodScore       float64 `json:"mood_score"`
	PositiveSignals int     `json:"positive_signals"`
	StressSignals   int     `json:"stress_signals"`
	BalanceSignals  int     `json:"balance_signals"`
}

// Summary aggregates one scan into the snapshot handed to the analyzer.
type Summary struct {
	TotalNotes     int
	JournalEntries int
	OtherNotes     int
	Notes          []*Note
	ByCategory     map[string][]*Note
	AllTags        []string
	AllPeople      []string
	Mood           *MoodResult
}
