// Package sensor provides the raw ADC readings for the moisture, light and
// temperature channels. The real source reads lines from the ADC board over
// a serial port; the fake allows testing without hardware.
package sensor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sweeney/plant-monitor/internal/logic"
)

// Reading is one raw ADC triple, indexed by logic.Channel.
type Reading struct {
	Raw  [logic.NumChannels]int
	Time time.Time
}

// Source yields the most recent reading.
type Source interface {
	// Latest returns the newest reading. ok is false when nothing usable has
	// been received yet or the last reading went stale.
	Latest() (r Reading, ok bool)

	// Close releases the underlying device.
	Close() error
}

// ParseLine parses "moisture,light,temperature" as decimal ADC counts.
// Each value must be in [0, resolution).
func ParseLine(line string, resolution int) ([logic.NumChannels]int, error) {
	var raw [logic.NumChannels]int

	parts := strings.Split(line, ",")
	if len(parts) != logic.NumChannels {
		return raw, fmt.Errorf("invalid line format: expected %d comma-separated values, got %d", logic.NumChannels, len(parts))
	}

	for _, ch := range logic.Channels {
		v, err := strconv.Atoi(strings.TrimSpace(parts[ch]))
		if err != nil {
			return raw, fmt.Errorf("invalid %s reading: %w", ch, err)
		}
		if v < 0 || v >= resolution {
			return raw, fmt.Errorf("%s reading out of range: %d (max %d)", ch, v, resolution-1)
		}
		raw[ch] = v
	}
	return raw, nil
}
