package logic

import (
	"errors"
	"fmt"
	"time"
)

// Default button labels.
const (
	LabelLeft  = "left"
	LabelRight = "right"
)

// Config holds everything needed to build a Monitor.
type Config struct {
	Channels [NumChannels]ChannelSpec
	Levels   [NumChannels]Level

	LeftLabel  string
	RightLabel string

	CoincidenceWindow time.Duration
	LongPress         time.Duration
	SensorInterval    time.Duration
	ErrorInterval     time.Duration
}

// DefaultConfig returns the stock bound tables and timings with every
// channel at Medium.
func DefaultConfig() Config {
	return Config{
		Channels: [NumChannels]ChannelSpec{
			ChannelMoisture: {
				Bounds:   Bounds{525, 490, 370, 273},
				Polarity: PolarityInverse,
				Convert:  Identity,
			},
			ChannelLight: {
				Bounds:   Bounds{1000, 170, 60, 0},
				Polarity: PolarityInverse,
				Convert:  Identity,
			},
			ChannelTemperature: {
				Bounds:   Bounds{8500, 9491, 10205, 11000},
				Polarity: PolarityDirect,
				Convert:  DefaultDivider.Resistance,
			},
		},
		Levels:            [NumChannels]Level{LevelMedium, LevelMedium, LevelMedium},
		LeftLabel:         LabelLeft,
		RightLabel:        LabelRight,
		CoincidenceWindow: CoincidenceWindow,
		LongPress:         LongPressDuration,
		SensorInterval:    SensorCheckInterval,
		ErrorInterval:     ErrorCheckInterval,
	}
}

// Input is one tick's worth of observations.
type Input struct {
	Left  bool
	Right bool

	// Raw ADC counts; only used when HaveSamples is set.
	Samples     [NumChannels]int
	HaveSamples bool

	// Now drives debounce and long-press timing.
	Now time.Time
	// SecondOfDay drives the periodic check gates.
	SecondOfDay int
}

// Output is what one tick decided.
type Output struct {
	Click       Click
	LongPresses []string

	// Level changes seen by the registry on this tick.
	LeftEdge  Edge
	RightEdge Edge

	// Sampled is true when samples were accumulated on this tick.
	Sampled bool
	// Verdict is set when an evaluation ran on this tick.
	Verdict *Verdict

	State      State
	Transition *Transition
}

// Monitor is the explicit context that owns every core component. It is not
// safe for concurrent use; drive it from a single loop.
type Monitor struct {
	cfg        Config
	registry   ButtonRegistry
	classifier *ButtonClassifier
	longPress  *LongPressDetector
	acc        SensorAccumulator
	evaluator  *ThresholdEvaluator
	controller *StateController
}

// NewMonitor validates cfg and builds a Monitor in SETUP.
func NewMonitor(cfg Config) (*Monitor, error) {
	if cfg.CoincidenceWindow <= 0 || cfg.LongPress <= 0 {
		return nil, errors.New("coincidence window and long press must be positive")
	}
	if cfg.SensorInterval < time.Second || cfg.ErrorInterval < time.Second {
		return nil, errors.New("check intervals must be at least one second")
	}
	for _, ch := range Channels {
		if cfg.Channels[ch].Convert == nil {
			cfg.Channels[ch].Convert = Identity
		}
	}

	evaluator, err := NewThresholdEvaluator(cfg.Channels, cfg.Levels)
	if err != nil {
		return nil, fmt.Errorf("threshold evaluator: %w", err)
	}

	m := &Monitor{
		cfg:        cfg,
		classifier: NewButtonClassifier(cfg.CoincidenceWindow),
		longPress:  NewLongPressDetector(cfg.LongPress),
		evaluator:  evaluator,
		controller: NewStateController(cfg.SensorInterval, cfg.ErrorInterval),
	}
	for _, label := range []string{cfg.LeftLabel, cfg.RightLabel} {
		if err := m.registry.Initialize(label); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Tick advances every component by one polling step. Buttons are classified
// before sensors are touched, so both decisions see the same snapshot.
func (m *Monitor) Tick(in Input) Output {
	leftEdge, _ := m.registry.Update(m.cfg.LeftLabel, in.Left, in.Now)
	rightEdge, _ := m.registry.Update(m.cfg.RightLabel, in.Right, in.Now)

	left, _ := m.registry.Get(m.cfg.LeftLabel)
	right, _ := m.registry.Get(m.cfg.RightLabel)

	out := Output{
		Click:       m.classifier.Classify(left.Pressed, right.Pressed, in.Now),
		LongPresses: m.longPress.Detect(&m.registry, in.Now),
		LeftEdge:    leftEdge,
		RightEdge:   rightEdge,
	}

	if m.controller.State() != StateSetup {
		if m.controller.SensorDue(in.SecondOfDay) && in.HaveSamples {
			out.Sampled = m.accumulate(in.Samples)
		}
		if m.controller.ErrorDue(in.SecondOfDay) {
			v, tr, changed := m.evaluate()
			out.Verdict = &v
			if changed {
				out.Transition = &tr
			}
		}
	}

	out.State = m.controller.State()
	return out
}

// CompleteSetup signals that the user finished setup.
func (m *Monitor) CompleteSetup() (Transition, bool) {
	if !m.controller.CompleteSetup() {
		return Transition{}, false
	}
	return Transition{From: StateSetup, To: StateIdle}, true
}

// Sample accumulates one raw reading outside the sensor schedule. It does
// nothing during SETUP and reports whether any channel took the value.
func (m *Monitor) Sample(raw [NumChannels]int) bool {
	if m.controller.State() == StateSetup {
		return false
	}
	return m.accumulate(raw)
}

// Recheck evaluates whatever has been accumulated so far, outside the
// regular error-check schedule.
func (m *Monitor) Recheck() (Verdict, Transition, bool) {
	if m.controller.State() == StateSetup {
		return Verdict{Flags: m.evaluator.Flags()}, Transition{}, false
	}
	return m.evaluate()
}

// Reset clears flags and samples and returns to SETUP.
func (m *Monitor) Reset() (Transition, bool) {
	from := m.controller.State()
	m.evaluator.clear()
	m.acc.reset()
	m.controller.Restart()
	if from == StateSetup {
		return Transition{}, false
	}
	return Transition{From: from, To: StateSetup}, true
}

// State returns the current system state.
func (m *Monitor) State() State {
	return m.controller.State()
}

// Flags returns the flags of the most recent evaluation.
func (m *Monitor) Flags() ErrorFlags {
	return m.evaluator.Flags()
}

// Levels returns the configured level per channel.
func (m *Monitor) Levels() [NumChannels]Level {
	return m.evaluator.Levels()
}

// Buttons returns a copy of the tracked buttons.
func (m *Monitor) Buttons() []Button {
	return m.registry.Buttons()
}

// SampleCount returns the number of samples waiting for the next evaluation.
func (m *Monitor) SampleCount(ch Channel) int {
	return m.acc.Count(ch)
}

func (m *Monitor) accumulate(raw [NumChannels]int) bool {
	sampled := false
	for _, ch := range Channels {
		v, ok := m.cfg.Channels[ch].Convert(raw[ch])
		if !ok {
			continue
		}
		m.acc.Accumulate(ch, v)
		sampled = true
	}
	return sampled
}

func (m *Monitor) evaluate() (Verdict, Transition, bool) {
	v := m.evaluator.Evaluate(&m.acc)
	tr, changed := m.controller.Apply(v)
	return v, tr, changed
}
