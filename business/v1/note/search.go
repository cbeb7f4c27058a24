package note

import (
	"sort"
	"strings"
)

type match struct {
	note      Note
	relevance int
	position  int
}

// Search returns the notes whose content, tags or category contain query,
// ignoring case. Results are ranked by relevance times importance, then by
// importance, then most recent first. A blank query returns no results,
// otherwise the query is matched as given, surrounding spaces included.
func (s *Store) Search(query string) []Note {
	if strings.TrimSpace(query) == "" {
		return []Note{}
	}
	q := strings.ToLower(query)

	s.mu.RLock()
	var matches []match
	for i, n := range s.notes {
		relevance := strings.Count(strings.ToLower(n.Content), q)
		if relevance == 0 && !matchesTag(n.Tags, q) && !strings.Contains(strings.ToLower(n.Category), q) {
			continue
		}
		matches = append(matches, match{note: n.clone(), relevance: relevance, position: i})
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if sa, sb := a.relevance*a.note.Importance, b.relevance*b.note.Importance; sa != sb {
			return sa > sb
		}
		if a.note.Importance != b.note.Importance {
			return a.note.Importance > b.note.Importance
		}
		// the list is kept most recent first
		return a.position < b.position
	})

	out := make([]Note, len(matches))
	for i, m := range matches {
		out[i] = m.note
	}
	return out
}

func matchesTag(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
