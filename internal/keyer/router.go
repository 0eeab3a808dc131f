// Package keyer routes alternating key presses and releases into classified symbols.
package keyer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuimorse/internal/morse"
	"github.com/verte-zerg/tuimorse/internal/timer"
)

// State is the router's position in the press/release cycle.
type State int

const (
	AwaitingPress State = iota
	AwaitingRelease
)

func (s State) String() string {
	switch s {
	case AwaitingPress:
		return "awaiting press"
	case AwaitingRelease:
		return "awaiting release"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrUnexpectedPress is returned for a press while the key is already down.
	ErrUnexpectedPress = errors.New("key press while awaiting release")
	// ErrUnexpectedRelease is returned for a release while the key is up.
	ErrUnexpectedRelease = errors.New("key release while awaiting press")
)

// Kind tells which transition produced an event.
type Kind int

const (
	Press Kind = iota
	Release
)

func (k Kind) String() string {
	if k == Press {
		return "press"
	}
	return "release"
}

// Event describes one classified interval.
type Event struct {
	Kind      Kind
	ElapsedMs float64
	Units     float64
	WPM       float64
	Symbol    morse.Symbol
	// Rendered is false when the interval produced no symbol.
	Rendered bool
}

// WPMSource supplies the rate at classification time.
type WPMSource interface {
	WPM() float64
}

// WPMFunc adapts a function to WPMSource.
type WPMFunc func() float64

// WPM implements WPMSource.
func (f WPMFunc) WPM() float64 { return f() }

// FixedWPM is a constant rate.
type FixedWPM float64

// WPM implements WPMSource.
func (f FixedWPM) WPM() float64 { return float64(f) }

// Renderer receives every symbol the router produces.
type Renderer interface {
	Render(sym morse.Symbol)
}

// Options configures a Router.
type Options struct {
	WPM      WPMSource
	Renderer Renderer
	Clock    timer.Clock
	Logger   *zap.Logger
	// LeadingGap renders the gap between session start and the first press.
	LeadingGap bool
}

// Router is a two-state machine: each press classifies the preceding gap,
// each release classifies the preceding hold.
type Router struct {
	wpm        WPMSource
	renderer   Renderer
	clock      timer.Clock
	logger     *zap.Logger
	leadingGap bool

	state   State
	timer   *timer.Timer
	pressed bool
}

// New builds a router in AwaitingPress with the session timer running.
func New(opts Options) *Router {
	r := &Router{
		wpm:        opts.WPM,
		renderer:   opts.Renderer,
		clock:      opts.Clock,
		logger:     opts.Logger,
		leadingGap: opts.LeadingGap,
	}
	if r.wpm == nil {
		r.wpm = FixedWPM(20)
	}
	if r.clock == nil {
		r.clock = timer.SystemClock{}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	r.Reset()
	return r
}

// Reset starts a new session.
func (r *Router) Reset() {
	r.state = AwaitingPress
	r.pressed = false
	r.timer = timer.Start(r.clock)
}

// State returns the current state.
func (r *Router) State() State {
	return r.state
}

// Elapsed returns milliseconds in the current interval.
func (r *Router) Elapsed() float64 {
	return r.timer.Elapsed()
}

// Press handles a key-down.
func (r *Router) Press() (Event, error) {
	if r.state != AwaitingPress {
		return Event{}, ErrUnexpectedPress
	}
	ev, err := r.classify(Press, morse.InactiveTable)
	if err != nil {
		return Event{}, err
	}
	if !r.pressed && !r.leadingGap {
		ev.Symbol, ev.Rendered = "", false
	}
	r.pressed = true
	r.transition(AwaitingRelease, ev)
	return ev, nil
}

// Release handles a key-up.
func (r *Router) Release() (Event, error) {
	if r.state != AwaitingRelease {
		return Event{}, ErrUnexpectedRelease
	}
	ev, err := r.classify(Release, morse.ActiveTable)
	if err != nil {
		return Event{}, err
	}
	r.transition(AwaitingPress, ev)
	return ev, nil
}

// Toggle performs whichever transition the current state expects.
func (r *Router) Toggle() (Event, error) {
	if r.state == AwaitingPress {
		return r.Press()
	}
	return r.Release()
}

func (r *Router) classify(kind Kind, table morse.Table) (Event, error) {
	wpm := r.wpm.WPM()
	if err := morse.ValidateWPM(wpm); err != nil {
		return Event{}, fmt.Errorf("classify %s at %v WPM: %w", kind, wpm, err)
	}
	elapsed := r.timer.Elapsed()
	sym, ok := morse.Classify(elapsed, wpm, table)
	return Event{
		Kind:      kind,
		ElapsedMs: elapsed,
		Units:     morse.ToUnits(elapsed, wpm),
		WPM:       wpm,
		Symbol:    sym,
		Rendered:  ok,
	}, nil
}

// transition swaps state before the renderer runs so a renderer never sees
// both directions enabled.
func (r *Router) transition(next State, ev Event) {
	r.state = next
	r.timer = timer.Start(r.clock)
	r.logger.Debug("key event",
		zap.Stringer("kind", ev.Kind),
		zap.Float64("elapsed_ms", ev.ElapsedMs),
		zap.Float64("units", ev.Units),
		zap.Float64("wpm", ev.WPM),
		zap.String("symbol", string(ev.Symbol)),
		zap.Bool("rendered", ev.Rendered),
	)
	if ev.Rendered && r.renderer != nil {
		r.renderer.Render(ev.Symbol)
	}
}
