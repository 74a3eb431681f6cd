// Package script replays recorded pointer sessions against the engine.
//
// A scenario is a YAML document:
//
//	name: solve-three
//	rows: 3
//	scheme: "--ABB-A--"
//	events: ["press 3", "enter 0", "release"]
//	expect:
//	  solved: true
//
// Run feeds every event through game.Apply and keeps each intermediate
// snapshot, so a scenario doubles as a readable transcript for golden tests
// and as a regression check for the CLI.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/flow/internal/game"
)

// ErrExpectation is wrapped by Check when the final state misses an expectation.
var ErrExpectation = errors.New("script: expectation failed")

// Scenario is one recorded session.
type Scenario struct {
	Name   string   `yaml:"name"`
	Rows   int      `yaml:"rows"`
	Scheme string   `yaml:"scheme"`
	Events []string `yaml:"events"`
	Expect *Expect  `yaml:"expect,omitempty"`
}

// Expect lists optional assertions on the final state.
type Expect struct {
	Solved   *bool `yaml:"solved,omitempty"`
	Flows    *int  `yaml:"flows,omitempty"`
	Progress *int  `yaml:"progress,omitempty"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario, rejecting unknown fields.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Name == "" {
		return nil, errors.New("parse scenario: name is required")
	}
	return &sc, nil
}

// Step is one replayed event and the snapshot after it.
type Step struct {
	Intent  game.Intent
	Changed bool
	State   *game.State
}

// Result is the outcome of a replay.
type Result struct {
	Scenario *Scenario
	Initial  *game.State
	Steps    []Step
	Moves    int // press/enter events that changed the board
}

// Final returns the last snapshot.
func (r *Result) Final() *game.State {
	if len(r.Steps) == 0 {
		return r.Initial
	}
	return r.Steps[len(r.Steps)-1].State
}

// Run loads the scheme and replays every event.
// A malformed event aborts the run; illegal moves are simply no-ops.
func Run(sc *Scenario) (*Result, error) {
	st, err := game.ParseScheme(sc.Rows, sc.Scheme)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	res := &Result{Scenario: sc, Initial: st, Steps: make([]Step, 0, len(sc.Events))}
	for i, ev := range sc.Events {
		in, err := game.ParseIntent(ev)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: event %d: %w", sc.Name, i+1, err)
		}
		next := game.Apply(st, in)
		changed := next != st
		if changed && (in.Kind == game.IntentPress || in.Kind == game.IntentEnter) {
			res.Moves++
		}
		res.Steps = append(res.Steps, Step{Intent: in, Changed: changed, State: next})
		st = next
	}
	return res, nil
}

// Check verifies the scenario's expectations against the final snapshot.
func (r *Result) Check() error {
	exp := r.Scenario.Expect
	if exp == nil {
		return nil
	}
	sum := game.Summarize(r.Final())
	var errs []error
	if exp.Solved != nil && *exp.Solved != sum.Solved {
		errs = append(errs, fmt.Errorf("%w: solved = %t, want %t", ErrExpectation, sum.Solved, *exp.Solved))
	}
	if exp.Flows != nil && *exp.Flows != sum.Flows {
		errs = append(errs, fmt.Errorf("%w: flows = %d, want %d", ErrExpectation, sum.Flows, *exp.Flows))
	}
	if exp.Progress != nil && *exp.Progress != sum.Progress {
		errs = append(errs, fmt.Errorf("%w: progress = %d, want %d", ErrExpectation, sum.Progress, *exp.Progress))
	}
	return errors.Join(errs...)
}

// Transcript renders the initial board and the board after every event.
// Events that changed nothing are marked "(no change)".
func (r *Result) Transcript() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s (%dx%d)\n", r.Scenario.Name, r.Scenario.Rows, r.Scenario.Rows)
	sb.WriteString(game.Render(r.Initial))
	for _, step := range r.Steps {
		fmt.Fprintf(&sb, "\n> %s\n", step.Intent)
		if !step.Changed {
			sb.WriteString("(no change)\n")
			continue
		}
		sb.WriteString(game.Render(step.State))
		sb.WriteString(StatusLine(step.State))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// StatusLine summarizes a snapshot on one line, e.g.
// "flows 1/2, progress 44%, dragging B".
func StatusLine(s *game.State) string {
	sum := game.Summarize(s)
	line := fmt.Sprintf("flows %d/%d, progress %d%%", sum.Flows, sum.Colors, sum.Progress)
	if id, ok := s.DraggingColor(); ok {
		line += ", dragging " + string(id)
	}
	if sum.Solved {
		line += ", solved"
	}
	return line
}
