package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/verte-zerg/tuimorse/internal/config"
	"github.com/verte-zerg/tuimorse/internal/keyer"
	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/morse"
	"github.com/verte-zerg/tuimorse/internal/render"
	"github.com/verte-zerg/tuimorse/internal/timer"
)

var spaceMsg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func newTestModel(t *testing.T, cfg model.Config) (*Model, *timer.ManualClock) {
	t.Helper()
	clock := timer.NewManualClock(time.Unix(0, 0))
	if cfg.WPM == 0 {
		cfg.WPM = 20
	}
	return newModel(cfg, zaptest.NewLogger(t), clock), clock
}

func runeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyerKeyTogglesRouter(t *testing.T) {
	m, clock := newTestModel(t, model.Config{})

	m.Update(spaceMsg)
	assert.Equal(t, keyer.AwaitingRelease, m.router.State())
	clock.Advance(60 * time.Millisecond)
	m.Update(spaceMsg)
	clock.Advance(60 * time.Millisecond)
	m.Update(spaceMsg)
	clock.Advance(180 * time.Millisecond)
	m.Update(spaceMsg)

	want := []morse.Symbol{morse.Dot, morse.CodeDelimiter, morse.Dash}
	if diff := cmp.Diff(want, m.output.Markers()); diff != "" {
		t.Fatalf("markers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, morse.Dash, m.last.Symbol)
	assert.InDelta(t, 20.0, m.session.MeasuredWPM(), 1e-9)
}

func TestKeyRepeatIsIgnored(t *testing.T) {
	m, clock := newTestModel(t, model.Config{})

	m.Update(spaceMsg)
	// Held key: the terminal repeats every 20ms, under half a 60ms unit.
	for i := 0; i < 3; i++ {
		clock.Advance(20 * time.Millisecond)
		m.Update(spaceMsg)
		assert.Equal(t, keyer.AwaitingRelease, m.router.State())
	}
	assert.Zero(t, m.output.Len())

	clock.Advance(120 * time.Millisecond)
	m.Update(spaceMsg)
	assert.Equal(t, keyer.AwaitingPress, m.router.State())
	assert.Equal(t, []morse.Symbol{morse.Dash}, m.output.Markers())
}

func TestKeyerHelpDescribesTapping(t *testing.T) {
	m, _ := newTestModel(t, model.Config{})
	assert.Contains(t, m.help.View(m.keys), "tap down, tap up")
}

func TestCustomKeyerKey(t *testing.T) {
	m, clock := newTestModel(t, model.Config{Key: "k"})
	m.Update(spaceMsg)
	assert.Equal(t, keyer.AwaitingPress, m.router.State())

	m.Update(runeMsg("k"))
	clock.Advance(180 * time.Millisecond)
	m.Update(runeMsg("k"))
	assert.Equal(t, []morse.Symbol{morse.Dash}, m.output.Markers())
}

func TestSpeedKeysChangeNextClassification(t *testing.T) {
	m, clock := newTestModel(t, model.Config{WPM: 2})
	m.Update(runeMsg("-"))
	m.Update(runeMsg("-"))
	assert.Equal(t, 1.0, m.WPM())

	for i := 0; i < 9; i++ {
		m.Update(runeMsg("+"))
	}
	assert.Equal(t, 10.0, m.WPM())

	m.Update(spaceMsg)
	clock.Advance(180 * time.Millisecond)
	m.Update(spaceMsg)
	assert.Equal(t, []morse.Symbol{morse.Dot}, m.output.Markers())
}

func TestColorKeyCycles(t *testing.T) {
	m, _ := newTestModel(t, model.Config{Color: "amber"})
	m.Update(runeMsg("c"))
	assert.Equal(t, render.Color("green"), m.output.Color())
}

func TestResetRestartsTiming(t *testing.T) {
	m, clock := newTestModel(t, model.Config{})
	m.Update(spaceMsg)
	m.Update(runeMsg("r"))
	assert.Equal(t, keyer.AwaitingPress, m.router.State())
	clock.Advance(time.Second)
	m.Update(spaceMsg)
	assert.Zero(t, m.output.Len())
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, model.Config{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestConfigReloadAppliesValidValues(t *testing.T) {
	m, _ := newTestModel(t, model.Config{})
	wpm := 30.0
	color := "cyan"
	m.Update(ConfigReloadedMsg{Config: config.FileConfig{Keyer: config.KeyerConfig{WPM: &wpm, Color: &color}}})
	assert.Equal(t, 30.0, m.WPM())
	assert.Equal(t, render.Color("cyan"), m.output.Color())

	bad := -5.0
	badColor := "mauve"
	m.Update(ConfigReloadedMsg{Config: config.FileConfig{Keyer: config.KeyerConfig{WPM: &bad, Color: &badColor}}})
	assert.Equal(t, 30.0, m.WPM())
	assert.Equal(t, render.Color("cyan"), m.output.Color())
}

func TestViewPlaceholderAndMarkers(t *testing.T) {
	m, clock := newTestModel(t, model.Config{})
	assert.Contains(t, m.View(), "Key with space")

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m.Update(spaceMsg)
	clock.Advance(180 * time.Millisecond)
	m.Update(spaceMsg)
	view := m.View()
	assert.Contains(t, view, render.Glyph(morse.Dash))
	assert.Contains(t, view, "unit 60ms")
}
