// Package config holds the explicit configuration passed into every component.
// Quadrant tables, keyword lists and known names are data here, not code, so
// tests can run against synthetic profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Quadrant defines one tracked life area: its identity plus the tag and
// keyword tables used for note categorization. Declaration order in
// Config.Quadrants is significant: it is the tie-break for categorization.
type Quadrant struct {
	Key      string   `yaml:"key"`
	Name     string   `yaml:"name"`
	Color    string   `yaml:"color"`
	Tags     []string `yaml:"tags"`
	Keywords []string `yaml:"keywords"`
}

// Config carries everything the pipeline needs. Construct with Default and
// overlay a profile file with LoadProfile; never read globals elsewhere.
type Config struct {
	VaultPath     string `yaml:"-"`
	DataDir       string `yaml:"-"`
	DBPath        string `yaml:"-"`
	JournalFolder string `yaml:"journal_folder"`
	AreaFolder    string `yaml:"area_folder"`

	Days              int `yaml:"days"`
	NoteLimit         int `yaml:"note_limit"`
	MoodJournalWindow int `yaml:"mood_journal_window"`
	ContentPreview    int `yaml:"content_preview"`

	Values      []string   `yaml:"values"`
	Quadrants   []Quadrant `yaml:"quadrants"`
	KnownPeople []string   `yaml:"known_people"`

	PositiveWords []string `yaml:"positive_words"`
	StressWords   []string `yaml:"stress_words"`
	BalanceWords  []string `yaml:"balance_words"`

	GitHubUsername string `yaml:"github_username"`
	GitHubToken    string `yaml:"-"`

	AnthropicAPIKey  string `yaml:"-"`
	GeminiAPIKey     string `yaml:"-"`
	TelegramToken    string `yaml:"-"`
	TelegramChatID   int64  `yaml:"telegram_chat_id"`
	DiscordToken     string `yaml:"-"`
	DiscordChannelID string `yaml:"discord_channel_id"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		JournalFolder:     "_Journal",
		AreaFolder:        "_Areas",
		Days:              14,
		NoteLimit:         25,
		MoodJournalWindow: 5,
		ContentPreview:    800,
		Values: []string{
			"Enjoying life",
			"Being good to people",
			"Physical development through movement",
			"Innovation and building things",
			"Travel and new experiences",
			"Learning languages",
		},
		Quadrants: []Quadrant{
			{
				Key:   "relationships",
				Name:  "Relationships",
				Color: "#FF6B6B",
				Tags:  []string{"relationships", "friends", "family", "social", "connection"},
				Keywords: []string{
					"friends", "family", "social", "lunch with", "meeting with",
					"talked to", "couple", "relationship",
				},
			},
			{
				Key:   "parkour",
				Name:  "Parkour",
				Color: "#4ECDC4",
				Tags:  []string{"parkour", "training", "movement", "fitness", "exercise"},
				Keywords: []string{
					"parkour", "training", "vaults", "kong", "handspring", "movement",
					"exercise", "workout", "calisthenics", "fitness", "dive roll",
					"turn vault", "planche", "pullup", "pistol squat",
				},
			},
			{
				Key:   "work",
				Name:  "Work & Innovation",
				Color: "#9B59B6",
				Tags:  []string{"work", "startup", "coding", "project", "development"},
				Keywords: []string{
					"startup", "company", "business", "pilot", "customers", "product",
					"building", "coding", "enterprise", "funding", "grant", "revenue",
					"marketing", "sales", "investor", "research",
				},
			},
			{
				Key:   "travel",
				Name:  "Travel & Adventure",
				Color: "#F9CA24",
				Tags:  []string{"travel", "trip", "adventure", "japan", "japanese", "language"},
				Keywords: []string{
					"japan", "japanese", "tokyo", "travel", "trip", "abroad",
					"language learning", "anki",
				},
			},
		},
		PositiveWords: []string{
			"excited", "great", "amazing", "happy", "good", "fantastic",
			"love", "awesome", "wonderful", "progress", "success", "achieved",
			"fun", "enjoying", "productive",
		},
		StressWords: []string{
			"worried", "stressed", "anxious", "overwhelmed", "tired",
			"frustrated", "stuck", "difficult", "hard", "problem",
			"behind", "overdoing", "burned", "struggle",
		},
		BalanceWords: []string{
			"balance", "rest", "chill", "relax", "break", "free time",
			"living", "enjoying life",
		},
	}
}

// LoadProfile overlays a YAML profile file onto the config. A missing file is
// not an error; the defaults stand.
func (c *Config) LoadProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return nil
}

// FromEnv fills credentials and usernames from the environment.
func (c *Config) FromEnv() {
	if v := os.Getenv("GITHUB_USERNAME"); v != "" {
		c.GitHubUsername = v
	}
	c.GitHubToken = os.Getenv("GITHUB_TOKEN")
	c.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.TelegramChatID = id
		}
	}
	c.DiscordToken = os.Getenv("DISCORD_TOKEN")
	if v := os.Getenv("DISCORD_CHANNEL_ID"); v != "" {
		c.DiscordChannelID = v
	}
}

// QuadrantKeys returns the quadrant keys in declaration order.
func (c Config) QuadrantKeys() []string {
	keys := make([]string, 0, len(c.Quadrants))
	for _, q := range c.Quadrants {
		keys = append(keys, q.Key)
	}
	return keys
}
