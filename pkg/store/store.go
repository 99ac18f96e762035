// Package store owns the on-disk JSON collections of the dashboard. Each
// collection is one human-readable JSON document; reads of absent files yield
// defaults, and writes go through a temp file and an atomic rename.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Collection filenames inside the data directory.
const (
	QuadrantsFile     = "quadrants.json"
	TimelineFile      = "timeline.json"
	RightNowFile      = "right_now.json"
	GoalsFile         = "goals.json"
	InspirationFile   = "inspiration.json"
	MetadataFile      = "metadata.json"
	ManualEntriesFile = "manual_entries.json"
)

// Store provides typed access to the persisted collections. It assumes a
// single writer; there is no locking across processes.
type Store struct {
	dir string
}

// New creates a store rooted at the given data directory, creating it if
// needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// readJSON decodes a collection file into target. An absent file leaves the
// target untouched so the caller's default stands.
func (s *Store) readJSON(filename string, target interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return nil
}

// writeJSON persists a collection with indentation, writing to a temp file
// first and renaming it into place so a crash never leaves a half-written
// document.
func (s *Store) writeJSON(filename string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", filename, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, filename)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

// Quadrants returns the quadrant collection, empty when absent.
func (s *Store) Quadrants() (Quadrants, error) {
	q := Quadrants{}
	if err := s.readJSON(QuadrantsFile, &q); err != nil {
		return nil, err
	}
	return q, nil
}

// WriteQuadrants persists the quadrant collection.
func (s *Store) WriteQuadrants(q Quadrants) error {
	return s.writeJSON(QuadrantsFile, q)
}

// Timeline returns the timeline entries, empty when absent.
func (s *Store) Timeline() ([]TimelineEntry, error) {
	var t []TimelineEntry
	if err := s.readJSON(TimelineFile, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// WriteTimeline persists the full timeline collection.
func (s *Store) WriteTimeline(t []TimelineEntry) error {
	if t == nil {
		t = []TimelineEntry{}
	}
	return s.writeJSON(TimelineFile, t)
}

// RightNow returns the current snapshot, empty when absent.
func (s *Store) RightNow() (RightNow, error) {
	r := RightNow{}
	if err := s.readJSON(RightNowFile, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// WriteRightNow persists the snapshot.
func (s *Store) WriteRightNow(r RightNow) error {
	return s.writeJSON(RightNowFile, r)
}

// Goals returns the goal buckets, both empty when absent.
func (s *Store) Goals() (Goals, error) {
	g := Goals{}
	if err := s.readJSON(GoalsFile, &g); err != nil {
		return Goals{}, err
	}
	return g, nil
}

// WriteGoals persists the goal buckets.
func (s *Store) WriteGoals(g Goals) error {
	if g.NearFuture == nil {
		g.NearFuture = []Goal{}
	}
	if g.FarFuture == nil {
		g.FarFuture = []Goal{}
	}
	return s.writeJSON(GoalsFile, g)
}

// Inspiration returns the inspiration items, empty when absent.
func (s *Store) Inspiration() ([]InspirationItem, error) {
	var items []InspirationItem
	if err := s.readJSON(InspirationFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WriteInspiration persists the inspiration collection.
func (s *Store) WriteInspiration(items []InspirationItem) error {
	if items == nil {
		items = []InspirationItem{}
	}
	return s.writeJSON(InspirationFile, items)
}

// Metadata returns the processing metadata, defaults when absent.
func (s *Store) Metadata() (Metadata, error) {
	m := Metadata{Version: "1.0.0"}
	if err := s.readJSON(MetadataFile, &m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// WriteMetadata persists the metadata document.
func (s *Store) WriteMetadata(m Metadata) error {
	return s.writeJSON(MetadataFile, m)
}

// ManualEntries returns every manual entry, processed or not.
func (s *Store) ManualEntries() ([]ManualEntry, error) {
	var entries []ManualEntry
	if err := s.readJSON(ManualEntriesFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UnprocessedManualEntries returns only the entries still awaiting a merge.
func (s *Store) UnprocessedManualEntries() ([]ManualEntry, error) {
	entries, err := s.ManualEntries()
	if err != nil {
		return nil, err
	}
	var pending []ManualEntry
	for _, e := range entries {
		if !e.Processed {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// WriteManualEntries persists the manual entry collection.
func (s *Store) WriteManualEntries(entries []ManualEntry) error {
	if entries == nil {
		entries = []ManualEntry{}
	}
	return s.writeJSON(ManualEntriesFile, entries)
}

// MarkManualEntriesProcessed flips the processed flag for every entry in the
// id batch and persists the collection. Entries stay in place until
// CompactManualEntries removes them.
func (s *Store) MarkManualEntriesProcessed(ids []string) error {
	entries, err := s.ManualEntries()
	if err != nil {
		return err
	}
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	for i := range entries {
		if idSet[entries[i].ID] {
			entries[i].Processed = true
		}
	}
	return s.WriteManualEntries(entries)
}

// CompactManualEntries physically removes all processed entries. It is
// independent of a merge run and safe to call at any time.
func (s *Store) CompactManualEntries() error {
	entries, err := s.ManualEntries()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if !e.Processed {
			kept = append(kept, e)
		}
	}
	return s.WriteManualEntries(kept)
}
