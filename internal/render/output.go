// Package render draws keyed symbols as an append-only row of markers.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/verte-zerg/tuimorse/internal/morse"
)

// ErrUnknownColor is returned for a color outside the palette.
var ErrUnknownColor = errors.New("unknown color")

// Color is the display attribute applied to keyed elements.
type Color string

// Palette lists the selectable colors in cycling order.
var Palette = []Color{"amber", "green", "white", "cyan", "red"}

// DefaultColor is the first palette entry.
const DefaultColor Color = "amber"

var colorHex = map[Color]string{
	"amber": "#C89A3A",
	"green": "#52C41A",
	"white": "#F0F0F0",
	"cyan":  "#36CFC9",
	"red":   "#FF4D4F",
}

var glyphs = map[morse.Symbol]string{
	morse.Dot:                "•",
	morse.Dash:               "▬",
	morse.CodeDelimiter:      "",
	morse.CharacterDelimiter: " ",
	morse.WordDelimiter:      " / ",
}

var gapStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

// ParseColor validates a color name.
func ParseColor(name string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := colorHex[c]; !ok {
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownColor, name, strings.Join(ColorNames(), ", "))
	}
	return c, nil
}

// ColorNames returns the palette as strings.
func ColorNames() []string {
	return lo.Map(Palette, func(c Color, _ int) string { return string(c) })
}

// Glyph returns the plain-text mark for a symbol.
func Glyph(sym morse.Symbol) string {
	return glyphs[sym]
}

// Output is an append-only sequence of markers plus a color attribute.
type Output struct {
	markers []morse.Symbol
	color   Color
}

// NewOutput returns an empty output in the given color.
func NewOutput(color Color) *Output {
	if _, ok := colorHex[color]; !ok {
		color = DefaultColor
	}
	return &Output{color: color}
}

// Render appends a marker. The empty symbol is ignored.
func (o *Output) Render(sym morse.Symbol) {
	if sym == "" {
		return
	}
	o.markers = append(o.markers, sym)
}

// Markers returns a copy of the rendered sequence.
func (o *Output) Markers() []morse.Symbol {
	return append([]morse.Symbol(nil), o.markers...)
}

// Len returns the number of markers.
func (o *Output) Len() int {
	return len(o.markers)
}

// Color returns the current color attribute.
func (o *Output) Color() Color {
	return o.color
}

// SetColor changes the color attribute; markers are untouched.
func (o *Output) SetColor(c Color) error {
	if _, ok := colorHex[c]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownColor, c)
	}
	o.color = c
	return nil
}

// NextColor advances to the next palette entry and returns it.
func (o *Output) NextColor() Color {
	idx := lo.IndexOf(Palette, o.color)
	o.color = Palette[(idx+1)%len(Palette)]
	return o.color
}

// View renders the markers styled and wrapped to width.
func (o *Output) View(width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(colorHex[o.color]))
	return wrapMarkers(buildMarkers(o.markers, style), width)
}

// FormatTags joins symbol tags with spaces.
func FormatTags(symbols []morse.Symbol) string {
	return strings.Join(lo.Map(symbols, func(s morse.Symbol, _ int) string { return string(s) }), " ")
}

// FormatGlyphs concatenates the plain glyphs of symbols.
func FormatGlyphs(symbols []morse.Symbol) string {
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(Glyph(s))
	}
	return b.String()
}
