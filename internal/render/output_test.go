package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuimorse/internal/morse"
)

func TestOutputIsAppendOnly(t *testing.T) {
	o := NewOutput(DefaultColor)
	o.Render(morse.Dot)
	o.Render("")
	o.Render(morse.CodeDelimiter)
	o.Render(morse.Dash)

	got := o.Markers()
	assert.Equal(t, []morse.Symbol{morse.Dot, morse.CodeDelimiter, morse.Dash}, got)

	got[0] = morse.WordDelimiter
	assert.Equal(t, morse.Dot, o.Markers()[0])
	assert.Equal(t, 3, o.Len())
}

func TestOutputColorCycle(t *testing.T) {
	o := NewOutput("nope")
	assert.Equal(t, DefaultColor, o.Color())

	seen := []Color{}
	for range Palette {
		seen = append(seen, o.NextColor())
	}
	assert.Equal(t, Color("amber"), seen[len(seen)-1])

	require.NoError(t, o.SetColor("red"))
	assert.ErrorIs(t, o.SetColor("mauve"), ErrUnknownColor)
	assert.Equal(t, Color("red"), o.Color())
}

func TestColorDoesNotTouchMarkers(t *testing.T) {
	o := NewOutput(DefaultColor)
	o.Render(morse.Dash)
	o.NextColor()
	assert.Equal(t, []morse.Symbol{morse.Dash}, o.Markers())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" Green ")
	require.NoError(t, err)
	assert.Equal(t, Color("green"), c)

	_, err = ParseColor("purple")
	assert.ErrorIs(t, err, ErrUnknownColor)
	assert.Contains(t, err.Error(), "amber, green")
}

func TestFormatters(t *testing.T) {
	seq := []morse.Symbol{morse.Dot, morse.CodeDelimiter, morse.Dash, morse.CharacterDelimiter, morse.Dot, morse.WordDelimiter, morse.Dash}
	assert.Equal(t, "DOT CODE_DELIMITER DASH CHARACTER_DELIMITER DOT WORD_DELIMITER DASH", FormatTags(seq))
	assert.Equal(t, "•▬ • / ▬", FormatGlyphs(seq))
	assert.Equal(t, "", FormatTags(nil))
}

func TestBuildMarkersSkipsCodeDelimiter(t *testing.T) {
	plain := lipgloss.NewStyle()
	markers := buildMarkers([]morse.Symbol{morse.Dot, morse.CodeDelimiter, morse.Dash, morse.WordDelimiter}, plain)
	require.Len(t, markers, 3)
	assert.Equal(t, plain.Render("•"), markers[0].s)
	assert.False(t, markers[0].isGap)
	assert.Equal(t, 3, markers[2].width)
	assert.True(t, markers[2].isGap)
}

func plainMarkers(text string) []styledMarker {
	out := []styledMarker{}
	for _, r := range text {
		out = append(out, styledMarker{s: string(r), width: 1, isGap: r == ' '})
	}
	return out
}

func TestWrapMarkersBreaksAtGap(t *testing.T) {
	got := wrapMarkers(plainMarkers("•• ▬▬ •▬"), 5)
	assert.Equal(t, "•• ▬▬\n•▬", got)

	got = wrapMarkers(plainMarkers("• ▬▬▬"), 3)
	assert.Equal(t, "•\n▬▬▬", got)
}

func TestWrapMarkersDropsGapsAtLineEdges(t *testing.T) {
	got := wrapMarkers(plainMarkers("•• ••"), 2)
	assert.Equal(t, "••\n••", got)

	got = wrapMarkers(plainMarkers(" •• ▬"), 2)
	assert.Equal(t, "••\n▬", got)
	for _, line := range strings.Split(got, "\n") {
		assert.NotEmpty(t, line)
	}

	wide := []styledMarker{
		{s: "•", width: 1},
		{s: " / ", width: 3, isGap: true},
		{s: "▬", width: 1},
	}
	assert.Equal(t, "•\n▬", wrapMarkers(wide, 2))
}

func TestWrapMarkersHardBreaksLongRun(t *testing.T) {
	got := wrapMarkers(plainMarkers("••••••"), 4)
	assert.Equal(t, "••••\n••", got)

	got = wrapMarkers(plainMarkers("• ••••"), 2)
	assert.Equal(t, "•\n••\n••", got)
}

func TestWrapMarkersNoWidth(t *testing.T) {
	got := wrapMarkers(plainMarkers("• ▬"), 0)
	assert.Equal(t, "• ▬", got)
	assert.Equal(t, 1, strings.Count(wrapMarkers(plainMarkers("• ▬ •"), 3), "\n"))
}
