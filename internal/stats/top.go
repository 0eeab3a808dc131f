package stats

import (
	"sort"

	"github.com/verte-zerg/tuimorse/internal/morse"
)

// TopSymbols returns the top N symbols by count. Ties keep table order;
// symbols never produced are left out.
func TopSymbols(s *Session, n int) []morse.Symbol {
	if n <= 0 {
		return nil
	}
	items := make([]morse.Symbol, 0, len(morse.Symbols))
	for _, sym := range morse.Symbols {
		if s.Count(sym) > 0 {
			items = append(items, sym)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return s.Count(items[i]) > s.Count(items[j])
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
