// Package trace parses timing scripts and replays them through a keyer.
//
// A script is a whitespace-separated list of steps. "+N" holds the key for N
// milliseconds, "-N" leaves it up for N milliseconds before the next press.
// N may carry an "ms" or "s" suffix. Everything after '#' on a line is
// ignored.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuimorse/internal/keyer"
	"github.com/verte-zerg/tuimorse/internal/morse"
	"github.com/verte-zerg/tuimorse/internal/render"
	"github.com/verte-zerg/tuimorse/internal/stats"
	"github.com/verte-zerg/tuimorse/internal/timer"
)

// Step is one interval of the script.
type Step struct {
	Down     bool
	Duration time.Duration
	Line     int
	Token    string
}

// Parse reads a script. Lines may be of any length.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	reader := bufio.NewReader(r)
	line := 0
	for {
		text, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		if text == "" && err == io.EOF {
			break
		}
		line++
		if idx := strings.IndexByte(text, '#'); idx >= 0 {
			text = text[:idx]
		}
		for _, tok := range strings.Fields(text) {
			step, perr := ParseStep(tok)
			if perr != nil {
				return nil, fmt.Errorf("line %d: %w", line, perr)
			}
			step.Line = line
			steps = append(steps, step)
		}
		if err == io.EOF {
			break
		}
	}
	return steps, nil
}

// ParseArgs parses steps given as separate arguments. The command line
// counts as line 1.
func ParseArgs(args []string) ([]Step, error) {
	steps := make([]Step, 0, len(args))
	for i, arg := range args {
		for _, tok := range strings.Fields(arg) {
			step, err := ParseStep(tok)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i+1, err)
			}
			step.Line = 1
			steps = append(steps, step)
		}
	}
	return steps, nil
}

// ParseStep parses a single "+N" or "-N" token.
func ParseStep(tok string) (Step, error) {
	if len(tok) < 2 {
		return Step{}, fmt.Errorf("invalid step %q", tok)
	}
	var down bool
	switch tok[0] {
	case '+':
		down = true
	case '-':
		down = false
	default:
		return Step{}, fmt.Errorf("invalid step %q: must start with + or -", tok)
	}
	value := tok[1:]
	scale := float64(time.Millisecond)
	switch {
	case strings.HasSuffix(value, "ms"):
		value = strings.TrimSuffix(value, "ms")
	case strings.HasSuffix(value, "s"):
		value = strings.TrimSuffix(value, "s")
		scale = float64(time.Second)
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) || n*scale >= math.MaxInt64 {
		return Step{}, fmt.Errorf("invalid duration in step %q", tok)
	}
	return Step{Down: down, Duration: time.Duration(math.Round(n * scale)), Token: tok}, nil
}

// Options configures a replay.
type Options struct {
	WPM        keyer.WPMSource
	LeadingGap bool
	Color      render.Color
	Logger     *zap.Logger
}

// Result holds everything a replay produced.
type Result struct {
	Output  *render.Output
	Session *stats.Session
	Events  []keyer.Event
}

// Symbols returns the rendered sequence.
func (r Result) Symbols() []morse.Symbol {
	return r.Output.Markers()
}

// Replay runs steps through a router on a manual clock. A "-N" step waits N
// and then presses, so the gap is classified when the key goes down. A "+N"
// step presses if the key is up, holds for N and releases.
func Replay(steps []Step, opts Options) (Result, error) {
	clock := timer.NewManualClock(time.Unix(0, 0))
	out := render.NewOutput(opts.Color)
	session := stats.NewSession()
	router := keyer.New(keyer.Options{
		WPM:        opts.WPM,
		Renderer:   out,
		Clock:      clock,
		Logger:     opts.Logger,
		LeadingGap: opts.LeadingGap,
	})
	res := Result{Output: out, Session: session}
	record := func(ev keyer.Event) {
		session.Add(ev)
		res.Events = append(res.Events, ev)
	}
	for i, step := range steps {
		wrap := func(err error) error {
			return fmt.Errorf("step %d (%s, line %d): %w", i+1, step.Token, step.Line, err)
		}
		if !step.Down {
			clock.Advance(step.Duration)
			ev, err := router.Press()
			if err != nil {
				return res, wrap(err)
			}
			record(ev)
			continue
		}
		if router.State() == keyer.AwaitingPress {
			ev, err := router.Press()
			if err != nil {
				return res, wrap(err)
			}
			record(ev)
		}
		clock.Advance(step.Duration)
		ev, err := router.Release()
		if err != nil {
			return res, wrap(err)
		}
		record(ev)
	}
	return res, nil
}
