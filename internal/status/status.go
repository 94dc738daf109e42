// Package status turns monitor state into things a person sees: the error
// message text, the status LED policy and a JSON snapshot for logs and
// --print-state.
package status

import (
	"strings"
	"time"

	"github.com/sweeney/plant-monitor/internal/logic"
)

// Per-flag messages, in display order.
var messages = [logic.NumChannels][2]string{
	logic.ChannelMoisture:    {"Water me!", "Too Soggy!"},
	logic.ChannelLight:       {"Let me sunbathe!", "I'm Blinded!"},
	logic.ChannelTemperature: {"I'm freezing!", "I'm burning!"},
}

// ErrorMessage joins the message of every raised flag with ", ".
// It returns "" when no flag is set.
func ErrorMessage(f logic.ErrorFlags) string {
	var parts []string
	for _, ch := range logic.Channels {
		if f.Low[ch] {
			parts = append(parts, messages[ch][0])
		}
		if f.High[ch] {
			parts = append(parts, messages[ch][1])
		}
	}
	return strings.Join(parts, ", ")
}

// Schedule splits the day into day and night by local hour.
type Schedule struct {
	DayStartHour   int
	NightStartHour int
}

// DefaultSchedule is 07:00 to 22:00.
var DefaultSchedule = Schedule{DayStartHour: 7, NightStartHour: 22}

// Daytime reports whether t falls in the day part of the schedule. A night
// start earlier than the day start wraps past midnight. Equal hours mean
// always day.
func (s Schedule) Daytime(t time.Time) bool {
	h := t.Hour()
	switch {
	case s.DayStartHour == s.NightStartHour:
		return true
	case s.DayStartHour < s.NightStartHour:
		return h >= s.DayStartHour && h < s.NightStartHour
	default:
		return h >= s.DayStartHour || h < s.NightStartHour
	}
}

// LEDOn decides the status LED: lit only for an unacknowledged error during
// the day.
func LEDOn(state logic.State, daytime, acknowledged bool) bool {
	return state == logic.StateError && daytime && !acknowledged
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs            int64
	SensorIntervalSec int64
	ErrorIntervalSec  int64
	SerialPort        string
}

// Snapshot is a point-in-time view of daemon state.
type Snapshot struct {
	State        logic.State
	Flags        logic.ErrorFlags
	Levels       [logic.NumChannels]logic.Level
	Pending      [logic.NumChannels]int // samples waiting for the next evaluation
	DisplayOn    bool
	Acknowledged bool
	LED          bool
	StartTime    time.Time
	Now          time.Time
	Config       Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Capture builds a snapshot from the monitor.
func Capture(m *logic.Monitor, start, now time.Time) Snapshot {
	s := Snapshot{
		State:     m.State(),
		Flags:     m.Flags(),
		Levels:    m.Levels(),
		StartTime: start,
		Now:       now,
	}
	for _, ch := range logic.Channels {
		s.Pending[ch] = m.SampleCount(ch)
	}
	return s
}
