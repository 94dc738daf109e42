package logic

import "fmt"

// Polarity is the comparison direction of a channel's bound table.
type Polarity int

const (
	// PolarityDirect: the reading rises with the measured quantity.
	// Bounds increase; below the lower bound is LOW.
	PolarityDirect Polarity = iota
	// PolarityInverse: the reading falls as the measured quantity rises
	// (e.g. probe resistance drops as soil gets wetter).
	// Bounds decrease; above the first bound is LOW.
	PolarityInverse
)

func (p Polarity) String() string {
	switch p {
	case PolarityDirect:
		return "direct"
	case PolarityInverse:
		return "inverse"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// Bounds holds the thresholds of a channel. The pair active for a level is
// (b[level], b[level+1]).
type Bounds [NumLevels + 1]float64

// ChannelSpec describes how a channel's samples are produced and judged.
type ChannelSpec struct {
	Bounds   Bounds
	Polarity Polarity
	Convert  Converter
}

// Validate checks that the bounds are strictly monotonic in the direction
// of the polarity.
func (s ChannelSpec) Validate() error {
	if s.Polarity != PolarityDirect && s.Polarity != PolarityInverse {
		return fmt.Errorf("invalid polarity %v", s.Polarity)
	}
	for i := 1; i < len(s.Bounds); i++ {
		prev, cur := s.Bounds[i-1], s.Bounds[i]
		if s.Polarity == PolarityDirect && cur <= prev {
			return fmt.Errorf("bounds must increase for %v polarity: %v", s.Polarity, s.Bounds)
		}
		if s.Polarity == PolarityInverse && cur >= prev {
			return fmt.Errorf("bounds must decrease for %v polarity: %v", s.Polarity, s.Bounds)
		}
	}
	return nil
}

// Classify compares an average against the bound pair of the level. At most
// one of low and high is true.
func (s ChannelSpec) Classify(level Level, avg float64) (low, high bool) {
	first, second := s.Bounds[level], s.Bounds[level+1]
	switch s.Polarity {
	case PolarityInverse:
		if avg > first {
			return true, false
		}
		if avg < second {
			return false, true
		}
	case PolarityDirect:
		if avg < first {
			return true, false
		}
		if avg > second {
			return false, true
		}
	}
	return false, false
}

// ThresholdEvaluator turns accumulated averages into error flags.
type ThresholdEvaluator struct {
	specs  [NumChannels]ChannelSpec
	levels [NumChannels]Level
	flags  ErrorFlags
}

// NewThresholdEvaluator validates the channel specs and levels.
func NewThresholdEvaluator(specs [NumChannels]ChannelSpec, levels [NumChannels]Level) (*ThresholdEvaluator, error) {
	for _, ch := range Channels {
		if err := specs[ch].Validate(); err != nil {
			return nil, fmt.Errorf("%v: %w", ch, err)
		}
		if !levels[ch].Valid() {
			return nil, fmt.Errorf("%v: invalid level %v", ch, levels[ch])
		}
	}
	return &ThresholdEvaluator{specs: specs, levels: levels}, nil
}

// Evaluate recomputes the flags of every channel that has samples, then
// resets the accumulator. A channel without samples gives no verdict and
// keeps its previous flags.
func (e *ThresholdEvaluator) Evaluate(acc *SensorAccumulator) Verdict {
	evaluated := false
	for _, ch := range Channels {
		avg, ok := acc.Average(ch)
		if !ok {
			continue
		}
		evaluated = true
		e.flags.Low[ch], e.flags.High[ch] = e.specs[ch].Classify(e.levels[ch], avg)
	}
	e.flags.Count = e.flags.count()
	acc.reset()

	return Verdict{Flags: e.flags, Evaluated: evaluated}
}

// Flags returns the flags of the most recent evaluation.
func (e *ThresholdEvaluator) Flags() ErrorFlags {
	return e.flags
}

// Levels returns the configured level of every channel.
func (e *ThresholdEvaluator) Levels() [NumChannels]Level {
	return e.levels
}

func (e *ThresholdEvaluator) clear() {
	e.flags = ErrorFlags{}
}
