package github

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"
)

const messageLimit = 10

// Summary condenses a window of GitHub activity.
type Summary struct {
	HasActivity    bool     `json:"has_activity"`
	Commits        int      `json:"commits"`
	Repos          []string `json:"repos"`
	Streak         int      `json:"streak"`
	RecentMessages []string `json:"recent_messages"`
	EventsCount    int      `json:"events_count"`
}

// Summarize fetches recent events and builds the activity summary. Fetch
// errors degrade to the empty summary; missing GitHub data is never fatal to
// a run.
func (c *Client) Summarize(ctx context.Context, days int) Summary {
	events, err := c.Events(ctx, days)
	if err != nil {
		log.Printf("github: error fetching events: %v", err)
		return Summary{Repos: []string{}, RecentMessages: []string{}}
	}
	return Summarize(events, time.Now())
}

// Summarize condenses the given events. It is split from the fetch so tests
// can feed synthetic histories.
func Summarize(events []Event, now time.Time) Summary {
	if len(events) == 0 {
		return Summary{Repos: []string{}, RecentMessages: []string{}}
	}
	return Summary{
		HasActivity:    true,
		Commits:        commitCount(events),
		Repos:          activeRepos(events),
		Streak:         codingStreak(events, now),
		RecentMessages: commitMessages(events, messageLimit),
		EventsCount:    len(events),
	}
}

func commitCount(events []Event) int {
	count := 0
	for _, e := range events {
		if e.Type == "PushEvent" {
			count += len(e.Payload.Commits)
		}
	}
	return count
}

// activeRepos lists repositories with activity, owner prefix stripped,
// sorted.
func activeRepos(events []Event) []string {
	set := make(map[string]bool)
	for _, e := range events {
		name := e.Repo.Name
		if name == "" {
			continue
		}
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		set[name] = true
	}
	repos := make([]string, 0, len(set))
	for name := range set {
		repos = append(repos, name)
	}
	sort.Strings(repos)
	return repos
}

func commitMessages(events []Event, limit int) []string {
	messages := []string{}
	for _, e := range events {
		if e.Type != "PushEvent" {
			continue
		}
		for _, c := range e.Payload.Commits {
			messages = append(messages, c.Message)
			if len(messages) >= limit {
				return messages
			}
		}
	}
	return messages
}

// codingStreak counts consecutive calendar days with at least one push,
// walking backward from today. A quiet today does not break the streak, it
// just is not counted yet.
func codingStreak(events []Event, now time.Time) int {
	active := make(map[string]bool)
	for _, e := range events {
		if e.Type == "PushEvent" {
			active[e.CreatedAt.Format("2006-01-02")] = true
		}
	}
	if len(active) == 0 {
		return 0
	}

	today := now.Format("2006-01-02")
	streak := 0
	day := now
	for {
		key := day.Format("2006-01-02")
		if active[key] {
			streak++
		} else if key != today {
			break
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
