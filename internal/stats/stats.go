// Package stats contains keying statistics for a session.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/tuimorse/internal/keyer"
	"github.com/verte-zerg/tuimorse/internal/morse"
)

const sparkChars = " .:-=+*#%@"

// Session accumulates router events.
type Session struct {
	counts map[morse.Symbol]int
	// element lengths in ms and in units at the rate they were keyed
	elementMs    []float64
	elementUnits []float64
	unitMs       []float64
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{counts: map[morse.Symbol]int{}}
}

// Add records an event. Events without a symbol are ignored.
func (s *Session) Add(ev keyer.Event) {
	if !ev.Rendered {
		return
	}
	s.counts[ev.Symbol]++
	if !ev.Symbol.Active() {
		return
	}
	s.elementMs = append(s.elementMs, ev.ElapsedMs)
	s.elementUnits = append(s.elementUnits, ev.Units)
	s.unitMs = append(s.unitMs, ev.ElapsedMs/ev.Symbol.Units())
}

// Count returns how many times sym was produced.
func (s *Session) Count(sym morse.Symbol) int {
	return s.counts[sym]
}

// Elements returns the number of dots and dashes.
func (s *Session) Elements() int {
	return len(s.elementMs)
}

// MeasuredWPM estimates the keyed speed from element lengths: each dot
// counts as one unit and each dash as three.
func (s *Session) MeasuredWPM() float64 {
	return WPMForUnit(lo.Mean(s.unitMs))
}

// RecentUnits returns up to n latest element lengths in units.
func (s *Session) RecentUnits(n int) []float64 {
	if n <= 0 || n >= len(s.elementUnits) {
		return append([]float64(nil), s.elementUnits...)
	}
	return append([]float64(nil), s.elementUnits[len(s.elementUnits)-n:]...)
}

// WPMForUnit converts a unit length in ms back to words per minute.
func WPMForUnit(unitMs float64) float64 {
	if unitMs <= 0 {
		return 0
	}
	return morse.MillisecondsMinute / (morse.UnitsPerWord * unitMs)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := lo.Min(values)
	maxVal := lo.Max(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints symbol counts and the measured speed.
func RenderSummary(w io.Writer, s *Session) error {
	if s.Elements() == 0 {
		_, err := fmt.Fprintln(w, "No elements keyed.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Elements: %d\n", s.Elements()); err != nil {
		return err
	}
	for _, sym := range morse.Symbols {
		if _, err := fmt.Fprintf(w, "%s: %d\n", sym, s.Count(sym)); err != nil {
			return err
		}
	}
	top := lo.Map(TopSymbols(s, 3), func(sym morse.Symbol, _ int) string { return string(sym) })
	if _, err := fmt.Fprintf(w, "Most keyed: %s\n", strings.Join(top, ", ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Measured WPM: %.1f\n", s.MeasuredWPM()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Element units: %s\n", Sparkline(s.RecentUnits(0))); err != nil {
		return err
	}
	return nil
}
