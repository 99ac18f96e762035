package vault

import (
	"regexp"
	"strings"

	"github.com/mklimuk/life-pilot/pkg/config"
)

var (
	inlineTagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern   = regexp.MustCompile(`@(\w+)`)
	wikilinkPattern  = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
)

// Extractor derives tags, people mentions and a category from a note. All
// quadrant tables, keyword lists and known names come from the configuration,
// so the matchers are data rather than inline literals.
type Extractor struct {
	quadrants   []config.Quadrant
	knownPeople *regexp.Regexp
}

// NewExtractor builds an extractor from the configured quadrant tables and
// known-people list.
func NewExtractor(cfg config.Config) *Extractor {
	e := &Extractor{quadrants: cfg.Quadrants}
	if len(cfg.KnownPeople) > 0 {
		names := make([]string, len(cfg.KnownPeople))
		for i, n := range cfg.KnownPeople {
			names[i] = regexp.QuoteMeta(n)
		}
		e.knownPeople = regexp.MustCompile(`\b(` + strings.Join(names, "|") + `)\b`)
	}
	return e
}

// Tags returns the union of frontmatter tags and inline #tags, lower-cased
// and deduplicated. Order is not significant.
func (e *Extractor) Tags(note *Note) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		tag = strings.ToLower(tag)
		if tag != "" && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	// Frontmatter tags may be a list or a single scalar.
	switch fm := note.Frontmatter["tags"].(type) {
	case []interface{}:
		for _, t := range fm {
			if s, ok := t.(string); ok {
				add(s)
			}
		}
	case string:
		add(fm)
	}

	for _, m := range inlineTagPattern.FindAllStringSubmatch(note.Content, -1) {
		add(m[1])
	}
	return tags
}

// People returns the people mentioned in the content: @mentions, wikilinks
// that look like names, and known-name matches. Deduplication is by exact
// string, so case variants count separately (unlike tags).
func (e *Extractor) People(content string) []string {
	seen := make(map[string]bool)
	var people []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			people = append(people, name)
		}
	}

	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		add(m[1])
	}

	for _, m := range wikilinkPattern.FindAllStringSubmatch(content, -1) {
		if looksLikeName(m[1]) {
			add(m[1])
		}
	}

	if e.knownPeople != nil {
		for _, m := range e.knownPeople.FindAllString(content, -1) {
			add(m)
		}
	}
	return people
}

// looksLikeName reports whether a wikilink target is plausibly a person:
// one to three words, each starting with an uppercase letter.
func looksLikeName(link string) bool {
	words := strings.Fields(link)
	if len(words) < 1 || len(words) > 3 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Categorize assigns a note to a quadrant. Keyword scoring is authoritative;
// when it yields nothing, tag overlap decides. Ties go to the first quadrant
// in declaration order. Returns "" when the note stays uncategorized.
func (e *Extractor) Categorize(note *Note) string {
	if key := e.CategorizeByKeywords(note); key != "" {
		return key
	}
	return e.CategorizeByTags(note)
}

// CategorizeByKeywords counts keyword occurrences in the lower-cased content
// and filename. The strictly highest-scoring quadrant wins, but only when its
// score is at least 2; an exact tie on the top score keeps the earlier
// quadrant.
func (e *Extractor) CategorizeByKeywords(note *Note) string {
	content := strings.ToLower(note.Content)
	filename := strings.ToLower(note.Filename)

	best := ""
	bestScore := 0
	for _, q := range e.quadrants {
		score := 0
		for _, kw := range q.Keywords {
			if strings.Contains(content, kw) || strings.Contains(filename, kw) {
				score++
			}
		}
		if score > bestScore {
			best = q.Key
			bestScore = score
		}
	}
	if bestScore >= 2 {
		return best
	}
	return ""
}

// CategorizeByTags returns the first quadrant, in declaration order, whose
// tag set intersects the note's extracted tags.
func (e *Extractor) CategorizeByTags(note *Note) string {
	tags := make(map[string]bool)
	for _, t := range e.Tags(note) {
		tags[t] = true
	}
	for _, q := range e.quadrants {
		for _, t := range q.Tags {
			if tags[strings.ToLower(t)] {
				return q.Key
			}
		}
	}
	return ""
}
