package logic

import "time"

// Default check intervals.
const (
	SensorCheckInterval = 10 * time.Second
	ErrorCheckInterval  = 60 * time.Second
)

// IntervalGate fires once on every wall-clock second that is a multiple of
// its interval, keyed by seconds since local midnight.
type IntervalGate struct {
	interval int
	last     int
}

// NewIntervalGate creates a gate. Intervals below one second are rounded up
// to one second.
func NewIntervalGate(interval time.Duration) *IntervalGate {
	secs := int(interval / time.Second)
	if secs < 1 {
		secs = 1
	}
	return &IntervalGate{interval: secs, last: -1}
}

// Due reports whether the check should run at sec (seconds since midnight).
// A value lower than the last checked second means midnight passed or the
// clock stepped back; the marker is dropped so the new day fires normally.
func (g *IntervalGate) Due(sec int) bool {
	if sec < g.last {
		g.last = -1
	}
	if sec%g.interval != 0 || sec == g.last {
		return false
	}
	g.last = sec
	return true
}

func (g *IntervalGate) reset() {
	g.last = -1
}

// SecondsSinceMidnight returns the seconds elapsed since midnight in t's location.
func SecondsSinceMidnight(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// StateController owns the system State and the periodic check gates.
type StateController struct {
	state  State
	sensor *IntervalGate
	check  *IntervalGate
}

// NewStateController starts in SETUP.
func NewStateController(sensorInterval, errorInterval time.Duration) *StateController {
	return &StateController{
		state:  StateSetup,
		sensor: NewIntervalGate(sensorInterval),
		check:  NewIntervalGate(errorInterval),
	}
}

// State returns the current state.
func (c *StateController) State() State {
	return c.state
}

// CompleteSetup leaves SETUP. It returns false if setup was already complete.
func (c *StateController) CompleteSetup() bool {
	if c.state != StateSetup {
		return false
	}
	c.state = StateIdle
	return true
}

// Apply moves between IDLE and ERROR according to an evaluation verdict.
// Verdicts are ignored during SETUP and when nothing was evaluated.
func (c *StateController) Apply(v Verdict) (Transition, bool) {
	if c.state == StateSetup || !v.Evaluated {
		return Transition{}, false
	}

	next := c.state
	if v.Flags.Any() {
		next = StateError
	} else if c.state == StateError {
		next = StateIdle
	}

	if next == c.state {
		return Transition{}, false
	}
	tr := Transition{From: c.state, To: next}
	c.state = next
	return tr, true
}

// SensorDue reports whether sensors should be sampled at sec.
func (c *StateController) SensorDue(sec int) bool {
	return c.sensor.Due(sec)
}

// ErrorDue reports whether an evaluation should run at sec.
func (c *StateController) ErrorDue(sec int) bool {
	return c.check.Due(sec)
}

// Restart returns to SETUP and forgets the gate markers.
func (c *StateController) Restart() {
	c.state = StateSetup
	c.sensor.reset()
	c.check.reset()
}
