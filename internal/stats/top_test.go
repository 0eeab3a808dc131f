package stats

import (
	"testing"

	"github.com/verte-zerg/tuimorse/internal/keyer"
	"github.com/verte-zerg/tuimorse/internal/morse"
)

func TestTopSymbols(t *testing.T) {
	s := NewSession()
	for _, sym := range []morse.Symbol{morse.Dash, morse.Dot, morse.Dash, morse.CodeDelimiter, morse.Dot, morse.WordDelimiter} {
		s.Add(keyer.Event{Symbol: sym, Rendered: true, ElapsedMs: 60 * sym.Units(), Units: sym.Units()})
	}
	top := TopSymbols(s, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 symbols, got %d", len(top))
	}
	if top[0] != morse.Dot || top[1] != morse.Dash || top[2] != morse.CodeDelimiter {
		t.Fatalf("unexpected order: %v", top)
	}
	if got := TopSymbols(s, 10); len(got) != 4 {
		t.Fatalf("expected unused symbols to be skipped, got %v", got)
	}
}
