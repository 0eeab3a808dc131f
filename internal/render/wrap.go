package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuimorse/internal/morse"
)

type styledMarker struct {
	s     string
	width int
	isGap bool
}

func buildMarkers(symbols []morse.Symbol, active lipgloss.Style) []styledMarker {
	out := make([]styledMarker, 0, len(symbols))
	for _, sym := range symbols {
		glyph := Glyph(sym)
		if glyph == "" {
			continue
		}
		style := gapStyle
		if sym.Active() {
			style = active
		}
		out = append(out, styledMarker{
			s:     style.Render(glyph),
			width: runewidth.StringWidth(glyph),
			isGap: !sym.Active(),
		})
	}
	return out
}

func renderMarkers(markers []styledMarker) string {
	var b strings.Builder
	for _, item := range markers {
		b.WriteString(item.s)
	}
	return b.String()
}

// splitRuns groups consecutive element markers into one run; every gap
// marker is a run of its own.
func splitRuns(markers []styledMarker) [][]styledMarker {
	var runs [][]styledMarker
	start := 0
	for i, item := range markers {
		if !item.isGap {
			continue
		}
		if i > start {
			runs = append(runs, markers[start:i])
		}
		runs = append(runs, markers[i:i+1])
		start = i + 1
	}
	if start < len(markers) {
		runs = append(runs, markers[start:])
	}
	return runs
}

// wrapMarkers fills lines up to width, breaking only at gaps. A gap that
// would end or start a line is dropped, and a run wider than the line is
// hard-broken.
func wrapMarkers(markers []styledMarker, width int) string {
	if width <= 0 {
		return renderMarkers(markers)
	}
	var lines []string
	var line []styledMarker
	lineWidth := 0
	flush := func() {
		for len(line) > 0 && line[len(line)-1].isGap {
			line = line[:len(line)-1]
		}
		lines = append(lines, renderMarkers(line))
		line, lineWidth = nil, 0
	}

	for _, run := range splitRuns(markers) {
		runWidth := lineWidthOf(run)
		if run[0].isGap {
			if len(line) == 0 {
				continue
			}
			if lineWidth+runWidth > width {
				flush()
				continue
			}
		} else if lineWidth+runWidth > width {
			if len(line) > 0 {
				flush()
			}
			for runWidth > width {
				n, w := 0, 0
				for n < len(run) && w+run[n].width <= width {
					w += run[n].width
					n++
				}
				if n == 0 {
					n = 1
				}
				lines = append(lines, renderMarkers(run[:n]))
				run = run[n:]
				runWidth = lineWidthOf(run)
			}
			if len(run) == 0 {
				continue
			}
		}
		line = append(line, run...)
		lineWidth += runWidth
	}
	if len(line) > 0 || len(lines) == 0 {
		lines = append(lines, renderMarkers(line))
	}
	return strings.Join(lines, "\n")
}

func lineWidthOf(line []styledMarker) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}
