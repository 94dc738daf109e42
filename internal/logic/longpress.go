package logic

import "time"

// LongPressDuration is the default continuous hold that counts as a long press.
const LongPressDuration = 3000 * time.Millisecond

// LongPressDetector derives the LongPress flag of every registered button.
type LongPressDetector struct {
	threshold time.Duration
}

// NewLongPressDetector creates a detector with the given hold threshold.
func NewLongPressDetector(threshold time.Duration) *LongPressDetector {
	return &LongPressDetector{threshold: threshold}
}

// Detect recomputes LongPress for all buttons in r and returns the labels
// whose flag was raised on this call. The flag drops as soon as the button
// is released.
func (d *LongPressDetector) Detect(r *ButtonRegistry, now time.Time) []string {
	var raised []string
	for i := 0; i < r.n; i++ {
		b := &r.buttons[i]
		long := b.Pressed && now.Sub(b.PressStart) >= d.threshold
		if long && !b.LongPress {
			raised = append(raised, b.Label)
		}
		b.LongPress = long
	}
	return raised
}
