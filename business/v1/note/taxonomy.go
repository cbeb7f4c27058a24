package note

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// GeneralCategory is assigned when no keyword of the taxonomy matches
const GeneralCategory = "general"

const maxTags = 3

// CategoryRule maps a category to the keywords that select it
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy drives category inference and tag extraction. Rules are evaluated in
// order and the first one with a matching keyword wins.
type Taxonomy struct {
	Categories []CategoryRule `yaml:"categories"`
	Notable    []string       `yaml:"notable"`
}

// DefaultTaxonomy returns the built-in category table and notable words
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Categories: []CategoryRule{
			{Name: "personal", Keywords: []string{"family", "friend", "birthday", "anniversary", "hobby"}},
			{Name: "work", Keywords: []string{"project", "meeting", "deadline", "client", "task"}},
			{Name: "learning", Keywords: []string{"study", "course", "book", "skill", "tutorial"}},
			{Name: "ideas", Keywords: []string{"idea", "brainstorm", "concept", "invent", "imagine"}},
			{Name: "goals", Keywords: []string{"goal", "achieve", "target", "resolution", "milestone"}},
			{Name: "health", Keywords: []string{"exercise", "diet", "doctor", "medicine", "wellness"}},
			{Name: "financial", Keywords: []string{"budget", "expense", "investment", "income", "savings"}},
			{Name: "travel", Keywords: []string{"trip", "vacation", "flight", "hotel", "destination"}},
		},
		Notable: []string{"important", "urgent", "remember", "note", "idea", "plan", "goal"},
	}
}

// LoadTaxonomy decodes a yaml document shaped like:
//
//	categories:
//	  - name: work
//	    keywords: [meeting, client]
//	notable: [urgent, remember]
func LoadTaxonomy(r io.Reader) (Taxonomy, error) {
	var t Taxonomy
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return Taxonomy{}, fmt.Errorf("decode taxonomy: %w", err)
	}
	if err := t.normalize(); err != nil {
		return Taxonomy{}, err
	}
	return t, nil
}

func (t *Taxonomy) normalize() error {
	seen := make(map[string]bool, len(t.Categories))
	for i, c := range t.Categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return fmt.Errorf("taxonomy category %d has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("taxonomy category %q declared twice", name)
		}
		seen[name] = true
		t.Categories[i].Name = name
		for k, kw := range c.Keywords {
			t.Categories[i].Keywords[k] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	for i, w := range t.Notable {
		t.Notable[i] = strings.ToLower(strings.TrimSpace(w))
	}
	return nil
}

// Known reports whether category is one of the taxonomy categories or general
func (t Taxonomy) Known(category string) bool {
	if category == GeneralCategory {
		return true
	}
	for _, c := range t.Categories {
		if c.Name == category {
			return true
		}
	}
	return false
}

// Categorize returns the first category with a keyword contained in content
func (t Taxonomy) Categorize(content string) string {
	lower := strings.ToLower(content)
	for _, c := range t.Categories {
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				return c.Name
			}
		}
	}
	return GeneralCategory
}

// Tags extracts up to three distinct tokens longer than three characters.
// Notable words come first in text order, the remaining slots go to the
// longest other tokens, earlier position winning ties.
func (t Taxonomy) Tags(content string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	notable := make(map[string]bool, len(t.Notable))
	for _, w := range t.Notable {
		notable[w] = true
	}

	seen := map[string]bool{}
	var picked, rest []string
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 3 || seen[tok] {
			continue
		}
		seen[tok] = true
		if notable[tok] {
			picked = append(picked, tok)
		} else {
			rest = append(rest, tok)
		}
	}

	if len(picked) >= maxTags {
		return picked[:maxTags]
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return utf8.RuneCountInString(rest[i]) > utf8.RuneCountInString(rest[j])
	})
	for _, tok := range rest {
		if len(picked) == maxTags {
			break
		}
		picked = append(picked, tok)
	}

	if picked == nil {
		return []string{}
	}
	return picked
}
