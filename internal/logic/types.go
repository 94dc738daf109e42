// Package logic contains the decision-making core of the plant monitor:
// button classification, long-press detection, sensor accumulation,
// threshold evaluation and the SETUP/IDLE/ERROR state machine.
// This package has NO external dependencies (no GPIO, serial, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"strings"
	"time"
)

// State represents the top-level system status.
type State string

const (
	StateSetup State = "SETUP"
	StateIdle  State = "IDLE"
	StateError State = "ERROR"
)

// Click is the classification of one coincidence window.
type Click string

const (
	ClickNone  Click = "NONE"
	ClickLeft  Click = "LEFT"
	ClickRight Click = "RIGHT"
	ClickBoth  Click = "BOTH"
)

// Level is the user-selected comfort tier for a channel.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

// NumLevels is the number of selectable levels.
const NumLevels = 3

var levelNames = [NumLevels]string{"Low", "Medium", "High"}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Valid reports whether l selects an existing bound pair.
func (l Level) Valid() bool {
	return l >= LevelLow && l < NumLevels
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// Channel identifies a sensor channel.
type Channel int

const (
	ChannelMoisture Channel = iota
	ChannelLight
	ChannelTemperature
)

// NumChannels is the number of sensor channels.
const NumChannels = 3

// Channels lists every channel in evaluation order.
var Channels = [NumChannels]Channel{ChannelMoisture, ChannelLight, ChannelTemperature}

var channelNames = [NumChannels]string{"moisture", "light", "temperature"}

func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// Button is one tracked physical button.
type Button struct {
	Label     string
	Pressed   bool
	LongPress bool
	// Time of the most recent rising edge
	PressStart time.Time
}

// Edge describes how a button level changed on an update.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "pressed"
	case EdgeFalling:
		return "released"
	default:
		return "none"
	}
}

// ErrorFlags holds the low/high error flag of every channel.
type ErrorFlags struct {
	Low   [NumChannels]bool
	High  [NumChannels]bool
	Count int
}

func (f ErrorFlags) MoistureLow() bool  { return f.Low[ChannelMoisture] }
func (f ErrorFlags) MoistureHigh() bool { return f.High[ChannelMoisture] }
func (f ErrorFlags) LightLow() bool     { return f.Low[ChannelLight] }
func (f ErrorFlags) LightHigh() bool    { return f.High[ChannelLight] }
func (f ErrorFlags) TempLow() bool      { return f.Low[ChannelTemperature] }
func (f ErrorFlags) TempHigh() bool     { return f.High[ChannelTemperature] }

// Any reports whether any flag is set.
func (f ErrorFlags) Any() bool {
	return f.Count > 0
}

func (f ErrorFlags) count() int {
	n := 0
	for _, ch := range Channels {
		if f.Low[ch] {
			n++
		}
		if f.High[ch] {
			n++
		}
	}
	return n
}

// Verdict is the result of one evaluation cycle.
type Verdict struct {
	Flags ErrorFlags
	// Evaluated is false when no channel had samples to average.
	Evaluated bool
}

// Transition records a state change.
type Transition struct {
	From State
	To   State
}
