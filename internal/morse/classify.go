package morse

import (
	"errors"
	"math"
)

// ErrInvalidWPM indicates a words-per-minute value that is not a positive finite number.
var ErrInvalidWPM = errors.New("WPM must be a positive number")

// ValidateWPM rejects rates that would break unit arithmetic.
func ValidateWPM(wpm float64) error {
	if math.IsNaN(wpm) || math.IsInf(wpm, 0) || wpm <= 0 {
		return ErrInvalidWPM
	}
	return nil
}

// UnitDuration returns the length of one unit in milliseconds.
// One word is 50 units, so unit = 60000 / (wpm * 50).
func UnitDuration(wpm float64) float64 {
	return MillisecondsMinute / (wpm * UnitsPerWord)
}

// ToUnits converts an elapsed duration into units at the given rate.
func ToUnits(elapsedMs, wpm float64) float64 {
	return elapsedMs / UnitDuration(wpm)
}

// Classify returns the table symbol nearest to elapsedMs. An entry is only a
// candidate once the elapsed time exceeds its weight minus one unit. On equal
// distance the earlier entry wins. The result is false when no entry qualifies.
//
// wpm must already be validated; see ValidateWPM.
func Classify(elapsedMs, wpm float64, table Table) (Symbol, bool) {
	units := ToUnits(elapsedMs, wpm)
	var (
		chosen Symbol
		best   = math.Inf(1)
		found  bool
	)
	for _, e := range table {
		if !(units > e.Units-1) {
			continue
		}
		if d := math.Abs(units - e.Units); d < best {
			chosen, best, found = e.Symbol, d, true
		}
	}
	return chosen, found
}

// ClassifyActive classifies a key-down duration as DOT or DASH.
func ClassifyActive(elapsedMs, wpm float64) (Symbol, bool) {
	return Classify(elapsedMs, wpm, ActiveTable)
}

// ClassifyInactive classifies a key-up duration as one of the delimiters.
func ClassifyInactive(elapsedMs, wpm float64) (Symbol, bool) {
	return Classify(elapsedMs, wpm, InactiveTable)
}
