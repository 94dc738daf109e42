package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/plant-monitor/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string                 `json:"event,omitempty"`
	Reason        string                 `json:"reason,omitempty"`
	State         string                 `json:"state"`
	Message       string                 `json:"message,omitempty"`
	ErrorCount    int                    `json:"error_count"`
	Channels      map[string]ChannelJSON `json:"channels"`
	DisplayOn     bool                   `json:"display_on"`
	Acknowledged  bool                   `json:"acknowledged"`
	LED           bool                   `json:"led"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	StartTime     string                 `json:"start_time"`
	Timestamp     string                 `json:"timestamp"`
	Config        ConfigJSON             `json:"config"`
}

// ChannelJSON is the per-channel view.
type ChannelJSON struct {
	Level   string `json:"level"`
	Low     bool   `json:"low"`
	High    bool   `json:"high"`
	Pending int    `json:"pending_samples"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs            int64  `json:"poll_ms"`
	SensorIntervalSec int64  `json:"sensor_interval_s"`
	ErrorIntervalSec  int64  `json:"error_interval_s"`
	SerialPort        string `json:"serial_port,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	state := string(snap.State)
	if state == "" {
		state = "UNKNOWN"
	}

	channels := make(map[string]ChannelJSON, logic.NumChannels)
	for _, ch := range logic.Channels {
		channels[ch.String()] = ChannelJSON{
			Level:   snap.Levels[ch].String(),
			Low:     snap.Flags.Low[ch],
			High:    snap.Flags.High[ch],
			Pending: snap.Pending[ch],
		}
	}

	return StatusInner{
		State:         state,
		Message:       ErrorMessage(snap.Flags),
		ErrorCount:    snap.Flags.Count,
		Channels:      channels,
		DisplayOn:     snap.DisplayOn,
		Acknowledged:  snap.Acknowledged,
		LED:           snap.LED,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Config: ConfigJSON{
			PollMs:            snap.Config.PollMs,
			SensorIntervalSec: snap.Config.SensorIntervalSec,
			ErrorIntervalSec:  snap.Config.ErrorIntervalSec,
			SerialPort:        snap.Config.SerialPort,
		},
	}
}

// FormatJSON returns the indented JSON status (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the single-line JSON status for a daemon event
// such as STARTUP, STATUS or SHUTDOWN.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
