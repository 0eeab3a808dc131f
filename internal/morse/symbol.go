// Package morse classifies key-down and key-up durations into Morse symbols.
package morse

// Symbol tags a single classified interval.
type Symbol string

// Active symbols are measured while the key is held down.
const (
	Dot  Symbol = "DOT"
	Dash Symbol = "DASH"
)

// Inactive symbols are measured during the gap after a release.
const (
	CodeDelimiter      Symbol = "CODE_DELIMITER"
	CharacterDelimiter Symbol = "CHARACTER_DELIMITER"
	WordDelimiter      Symbol = "WORD_DELIMITER"
)

// Unit weights of each symbol (ITU ratios).
const (
	DotUnits           = 1.0
	DashUnits          = 3.0
	IntraCharUnits     = 1.0
	InterCharUnits     = 3.0
	InterWordUnits     = 7.0
	UnitsPerWord       = 50.0
	MillisecondsMinute = 60000.0
)

// Entry pairs a unit weight with the symbol it stands for.
type Entry struct {
	Units  float64
	Symbol Symbol
}

// Table is an ordered list of candidate symbols. Order breaks ties.
type Table []Entry

var (
	// ActiveTable holds key-down symbols.
	ActiveTable = Table{
		{Units: DotUnits, Symbol: Dot},
		{Units: DashUnits, Symbol: Dash},
	}
	// InactiveTable holds key-up symbols.
	InactiveTable = Table{
		{Units: IntraCharUnits, Symbol: CodeDelimiter},
		{Units: InterCharUnits, Symbol: CharacterDelimiter},
		{Units: InterWordUnits, Symbol: WordDelimiter},
	}
)

// Symbols lists every symbol, active set first, in table order.
var Symbols = []Symbol{Dot, Dash, CodeDelimiter, CharacterDelimiter, WordDelimiter}

// Active reports whether the symbol belongs to the key-down set.
func (s Symbol) Active() bool {
	return s == Dot || s == Dash
}

// Units returns the symbol's weight, or 0 for an unknown symbol.
func (s Symbol) Units() float64 {
	for _, table := range []Table{ActiveTable, InactiveTable} {
		for _, e := range table {
			if e.Symbol == s {
				return e.Units
			}
		}
	}
	return 0
}

func (s Symbol) String() string {
	return string(s)
}
