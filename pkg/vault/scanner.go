package vault

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var journalDatePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\.\w+$`)

// Scanner walks a vault tree and yields parsed notes. The journal folder is
// excluded from the general walk and scanned in its own pass, so each file is
// visited at most once.
type Scanner struct {
	Root          string
	JournalFolder string
	AreaFolder    string
}

// NewScanner creates a scanner rooted at the given vault path.
func NewScanner(root, journalFolder, areaFolder string) *Scanner {
	return &Scanner{Root: root, JournalFolder: journalFolder, AreaFolder: areaFolder}
}

// Recent returns the notes touched within the last `days` days. Journal
// entries come first, sorted by entry date descending; general notes follow in
// walk order. A missing vault root yields an empty result, not an error.
func (s *Scanner) Recent(days int) ([]*Note, error) {
	if _, err := os.Stat(s.Root); err != nil {
		log.Printf("scanner: vault not found at %s", s.Root)
		return nil, nil
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	journals := s.scanJournal(cutoff)
	notes := journals

	err := filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("scanner: skipping %s: %v", path, err)
			return nil
		}
		if info.IsDir() {
			if path == s.Root {
				return nil
			}
			// Hidden directories (.obsidian and the like) and the journal
			// folder are not part of the general walk.
			if strings.HasPrefix(info.Name(), ".") || info.Name() == s.JournalFolder {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			return nil
		}

		note, err := ReadNote(path)
		if err != nil {
			log.Printf("scanner: error reading %s: %v", path, err)
			return nil
		}
		note.Source = s.classify(path)
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// scanJournal reads the reserved journal folder. Entry dates are parsed from
// YYYY-MM-DD filenames, falling back to the modification time. A file is kept
// when either its entry date or its modification time falls inside the window.
func (s *Scanner) scanJournal(cutoff time.Time) []*Note {
	dir := filepath.Join(s.Root, s.JournalFolder)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var journals []*Note
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		note, err := ReadNote(path)
		if err != nil {
			log.Printf("scanner: error reading journal %s: %v", path, err)
			continue
		}
		note.IsJournal = true
		note.Source = SourceJournal
		if date, ok := ParseEntryDate(entry.Name()); ok {
			note.EntryDate = date
		}

		if note.Modified.Before(cutoff) && note.Date().Before(cutoff) {
			continue
		}
		journals = append(journals, note)
	}

	sort.Slice(journals, func(i, j int) bool {
		return journals[i].Date().After(journals[j].Date())
	})
	return journals
}

// FullScan walks the entire vault with no recency cutoff, for one-time bulk
// ingestion. Notes come back sorted by modification time descending, each
// tagged with its source class.
func (s *Scanner) FullScan() ([]*Note, error) {
	if _, err := os.Stat(s.Root); err != nil {
		log.Printf("scanner: vault not found at %s", s.Root)
		return nil, nil
	}

	var notes []*Note
	err := filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("scanner: skipping %s: %v", path, err)
			return nil
		}
		if info.IsDir() {
			if path != s.Root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}

		note, err := ReadNote(path)
		if err != nil {
			log.Printf("scanner: error reading %s: %v", path, err)
			return nil
		}
		note.Source = s.classify(path)
		if note.Source == SourceJournal {
			note.IsJournal = true
			if date, ok := ParseEntryDate(info.Name()); ok {
				note.EntryDate = date
			}
		}
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Modified.After(notes[j].Modified)
	})
	return notes, nil
}

func (s *Scanner) classify(path string) Source {
	rel, err := filepath.Rel(s.Root, path)
	if err != nil {
		return SourceNotes
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	switch parts[0] {
	case s.JournalFolder:
		return SourceJournal
	case s.AreaFolder:
		return SourceArea
	default:
		return SourceNotes
	}
}

// ParseEntryDate extracts a calendar date from a YYYY-MM-DD journal filename.
func ParseEntryDate(filename string) (time.Time, bool) {
	m := journalDatePattern.FindStringSubmatch(filename)
	if m == nil {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
