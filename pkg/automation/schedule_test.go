package automation

import (
	"testing"
	"time"
)

func TestParseScheduleEvery(t *testing.T) {
	s, err := ParseSchedule("every 12h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	from := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	next := s.Next(from)
	if got := next.Sub(from); got != 12*time.Hour {
		t.Errorf("expected 12h interval, got %v", got)
	}
}

func TestParseScheduleDaily(t *testing.T) {
	s, err := ParseSchedule("daily 09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	next := s.Next(before)
	want := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}

	after := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	next = s.Next(after)
	want = time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestParseScheduleDailyExactTimeRollsOver(t *testing.T) {
	s, err := ParseSchedule("daily 09:30")
	if err != nil {
		t.Fatal(err)
	}
	at := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	next := s.Next(at)
	want := time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestParseScheduleInvalid(t *testing.T) {
	cases := []string{
		"",
		"every",
		"every 10s",
		"every banana",
		"daily 25:00",
		"hourly 10m",
		"every 1h extra",
	}
	for _, expr := range cases {
		if _, err := ParseSchedule(expr); err == nil {
			t.Errorf("expected error for %q", expr)
		}
	}
}
