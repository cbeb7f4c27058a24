package note

import "time"

// Stats aggregates the collection. Today counts notes created on the same
// calendar date as now, in now's location.
func (s *Store) Stats(now time.Time) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Total:            len(s.notes),
		ByCategory:       map[string]int{},
		MostUsedCategory: GeneralCategory,
	}

	y, m, d := now.Date()
	for _, n := range s.notes {
		st.ByCategory[n.Category]++
		if n.Importance >= 4 {
			st.Important++
		}
		if ny, nm, nd := n.CreatedAt.In(now.Location()).Date(); ny == y && nm == m && nd == d {
			st.Today++
		}
	}
	st.Categories = len(st.ByCategory)

	best := 0
	for c, count := range st.ByCategory {
		if count > best || (count == best && c < st.MostUsedCategory) {
			best, st.MostUsedCategory = count, c
		}
	}

	return st
}
