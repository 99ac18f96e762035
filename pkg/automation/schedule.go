package automation

import (
	"fmt"
	"strings"
	"time"
)

// Schedule describes when unattended runs happen. Two forms are supported:
// "every <duration>" (e.g. "every 12h") and "daily <HH:MM>" local time
// (e.g. "daily 09:00").
type Schedule struct {
	interval time.Duration
	daily    bool
	hour     int
	minute   int
}

// ParseSchedule parses a schedule expression.
func ParseSchedule(expr string) (*Schedule, error) {
	fields := strings.Fields(strings.TrimSpace(expr))
	if len(fields) != 2 {
		return nil, fmt.Errorf("invalid schedule %q (expected 'every <duration>' or 'daily <HH:MM>')", expr)
	}

	switch fields[0] {
	case "every":
		d, err := time.ParseDuration(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid interval %q: %w", fields[1], err)
		}
		if d < time.Minute {
			return nil, fmt.Errorf("interval must be at least one minute")
		}
		return &Schedule{interval: d}, nil
	case "daily":
		t, err := time.Parse("15:04", fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid time of day %q: %w", fields[1], err)
		}
		return &Schedule{daily: true, hour: t.Hour(), minute: t.Minute()}, nil
	default:
		return nil, fmt.Errorf("unsupported schedule kind %q", fields[0])
	}
}

// Next returns the next run time strictly after `from`.
func (s *Schedule) Next(from time.Time) time.Time {
	if !s.daily {
		return from.Add(s.interval)
	}
	next := time.Date(from.Year(), from.Month(), from.Day(), s.hour, s.minute, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
