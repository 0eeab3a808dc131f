// Package tui provides the Bubble Tea keyer interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuimorse/internal/config"
	"github.com/verte-zerg/tuimorse/internal/keyer"
	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/morse"
	"github.com/verte-zerg/tuimorse/internal/render"
	"github.com/verte-zerg/tuimorse/internal/stats"
	"github.com/verte-zerg/tuimorse/internal/timer"
)

// SpaceKey names the space bar in Config.Key.
const SpaceKey = "space"

const sparkWindow = 16

// ConfigReloadedMsg carries a config file that changed on disk.
type ConfigReloadedMsg struct {
	Config config.FileConfig
}

// Model implements the Bubble Tea keyer UI.
type Model struct {
	config  model.Config
	logger  *zap.Logger
	router  *keyer.Router
	output  *render.Output
	session *stats.Session
	keys    keyMap
	help    help.Model

	wpm float64

	width  int
	height int

	last    keyer.Event
	hasLast bool
	clock   timer.Clock
	lastKey time.Time
	keyed   bool
}

var (
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// NewModel constructs a keyer TUI model. cfg must already be validated.
func NewModel(cfg model.Config, logger *zap.Logger) *Model {
	return newModel(cfg, logger, timer.SystemClock{})
}

func newModel(cfg model.Config, logger *zap.Logger, clock timer.Clock) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Key == "" {
		cfg.Key = SpaceKey
	}
	if clock == nil {
		clock = timer.SystemClock{}
	}
	m := &Model{
		config:  cfg,
		logger:  logger,
		output:  render.NewOutput(render.Color(cfg.Color)),
		session: stats.NewSession(),
		keys:    newKeyMap(cfg.Key),
		help:    help.New(),
		wpm:     cfg.WPM,
		clock:   clock,
	}
	m.router = keyer.New(keyer.Options{
		WPM:        keyer.WPMFunc(m.WPM),
		Renderer:   m.output,
		Clock:      clock,
		Logger:     logger,
		LeadingGap: cfg.LeadingGap,
	})
	return m
}

// WPM returns the rate used for the next classification.
func (m *Model) WPM() float64 {
	return m.wpm
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case ConfigReloadedMsg:
		m.applyFileConfig(msg.Config)
		return m, nil
	case tea.KeyMsg:
		if m.isKeyerKey(msg) {
			m.handleKey()
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Faster):
			m.setWPM(m.wpm + 1)
		case key.Matches(msg, m.keys.Slower):
			m.setWPM(m.wpm - 1)
		case key.Matches(msg, m.keys.Color):
			c := m.output.NextColor()
			m.logger.Debug("color changed", zap.String("color", string(c)))
		case key.Matches(msg, m.keys.Reset):
			m.router.Reset()
			m.hasLast = false
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	var content string
	if m.output.Len() == 0 {
		content = placeholderStyle.Render(fmt.Sprintf("Key with %s", keyLabel(m.config.Key)))
	} else {
		content = m.output.View(contentWidth)
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	content = lipgloss.NewStyle().Width(contentWidth).Render(content)
	footer := m.renderFooter()
	helpLine := m.help.View(m.keys)
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bottom := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, helpLine),
	)
	bodyHeight := m.height - lipgloss.Height(bottom)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + bottom
}

func (m *Model) isKeyerKey(msg tea.KeyMsg) bool {
	if m.config.Key == SpaceKey {
		return msg.Type == tea.KeySpace
	}
	return msg.Type == tea.KeyRunes && string(msg.Runes) == m.config.Key
}

// handleKey toggles the router. Terminals report no key releases, so each
// keystroke of the keyer key is the next edge. A keystroke less than half a
// unit after the previous one is auto-repeat of a held key and is dropped.
func (m *Model) handleKey() {
	now := m.clock.Now()
	since := float64(now.Sub(m.lastKey)) / float64(time.Millisecond)
	repeat := m.keyed && since < morse.UnitDuration(m.wpm)/2
	m.lastKey, m.keyed = now, true
	if repeat {
		m.logger.Debug("key repeat ignored", zap.Float64("since_ms", since))
		return
	}
	ev, err := m.router.Toggle()
	if err != nil {
		m.logger.Warn("key event rejected", zap.Error(err), zap.Stringer("state", m.router.State()))
		return
	}
	m.session.Add(ev)
	if ev.Rendered {
		m.last = ev
		m.hasLast = true
	}
}

func (m *Model) setWPM(wpm float64) {
	if wpm < 1 {
		wpm = 1
	}
	if err := morse.ValidateWPM(wpm); err != nil {
		return
	}
	m.wpm = wpm
	m.logger.Debug("wpm changed", zap.Float64("wpm", wpm))
}

func (m *Model) applyFileConfig(cfg config.FileConfig) {
	if v := cfg.Keyer.WPM; v != nil {
		if err := morse.ValidateWPM(*v); err != nil {
			m.logger.Warn("ignoring reloaded wpm", zap.Float64("wpm", *v), zap.Error(err))
		} else {
			m.wpm = *v
		}
	}
	if v := cfg.Keyer.Color; v != nil {
		c, err := render.ParseColor(*v)
		if err == nil {
			err = m.output.SetColor(c)
		}
		if err != nil {
			m.logger.Warn("ignoring reloaded color", zap.String("color", *v), zap.Error(err))
		}
	}
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("%g WPM · unit %.0fms", m.wpm, morse.UnitDuration(m.wpm)),
		stateLabel(m.router.State()),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %s %.0fms (%.1fu)", m.last.Symbol, m.last.ElapsedMs, m.last.Units))
	}
	if m.session.Elements() > 0 {
		segments = append(segments, fmt.Sprintf("Keyed %.1f WPM %s", m.session.MeasuredWPM(), stats.Sparkline(m.session.RecentUnits(sparkWindow))))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func stateLabel(s keyer.State) string {
	if s == keyer.AwaitingRelease {
		return "▼ key down"
	}
	return "▲ key up"
}

func keyLabel(k string) string {
	if k == SpaceKey {
		return "space"
	}
	return fmt.Sprintf("%q", k)
}
