package dragkit

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an interaction script.
type scriptStep struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	State  string  `yaml:"state,omitempty"`
}

// script is the top-level structure of an interaction script. JSON scripts
// are accepted too since JSON is a subset of YAML.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// TestRunner sequences injected input across frames for scripted
// interaction tests and demos. Call Step once per frame before the
// injector.
type TestRunner struct {
	inj       *Injector
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a YAML or JSON interaction script and binds it to
// the injector.
func LoadTestScript(data []byte, inj *Injector) (*TestRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "press", "move", "release", "drag", "wait", "escape", "blur", "abort", "expect":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{inj: inj, steps: sc.Steps}, nil
}

// Done reports whether every step has executed and the injected input has
// drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of failed expect steps.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// Step advances the runner by one frame.
func (r *TestRunner) Step() {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if r.inj.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		r.inj.Press(st.X, st.Y)
	case "move":
		r.inj.Move(st.X, st.Y)
	case "release":
		r.inj.Release(st.X, st.Y)
	case "drag":
		r.inj.Drag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "escape":
		r.inj.Key(KeyEscape)
	case "blur":
		r.inj.Blur()
	case "abort":
		r.inj.ctrl.Abort()
	case "expect":
		r.expect(r.cursor-1, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.inj.Pending() == 0 {
		r.done = true
	}
}

func (r *TestRunner) expect(i int, st scriptStep) {
	got := StateIdle.String()
	if s := r.inj.ctrl.Session(); s != nil {
		got = s.State.String()
	}
	if st.State != "" && st.State != got {
		r.failures = append(r.failures, fmt.Sprintf("step %d: expected state %s, got %s", i, st.State, got))
	}
}
