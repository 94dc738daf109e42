//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the buttons from actual hardware using the Linux GPIO
// character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	left  *gpiocdev.Line
	right *gpiocdev.Line
}

// NewRealReader requests both button lines on the named chip.
func NewRealReader(chipName string, pinLeft, pinRight int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// Buttons short the line to ground, so pull up and read active-low.
	left, err := chip.RequestLine(pinLeft, gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request left pin %d: %w", pinLeft, err)
	}

	right, err := chip.RequestLine(pinRight, gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
	if err != nil {
		left.Close()
		chip.Close()
		return nil, fmt.Errorf("request right pin %d: %w", pinRight, err)
	}

	return &RealReader{
		chip:  chip,
		left:  left,
		right: right,
	}, nil
}

// Read returns the logical pressed states of both buttons.
func (r *RealReader) Read() (bool, bool, error) {
	left, err := r.left.Value()
	if err != nil {
		return false, false, fmt.Errorf("read left pin: %w", err)
	}

	right, err := r.right.Value()
	if err != nil {
		return false, false, fmt.Errorf("read right pin: %w", err)
	}

	return left == 1, right == 1, nil
}

// Close releases GPIO resources. Lines are put back to plain pulled-up
// inputs first so the buttons stay at a defined level after exit.
func (r *RealReader) Close() error {
	var errs []error

	for name, line := range map[string]*gpiocdev.Line{"left": r.left, "right": r.right} {
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", name, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", name, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealLED drives the status LED line.
type RealLED struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealLED requests the LED pin as an output, initially off.
func NewRealLED(chipName string, pin int) (*RealLED, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request led pin %d: %w", pin, err)
	}

	return &RealLED{chip: chip, line: line}, nil
}

// Set switches the LED.
func (l *RealLED) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := l.line.SetValue(v); err != nil {
		return fmt.Errorf("set led: %w", err)
	}
	return nil
}

// Close turns the LED off and releases the line as an input.
func (l *RealLED) Close() error {
	var errs []error

	if l.line != nil {
		if err := l.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear led: %w", err))
		}
		if err := l.line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure led pin: %w", err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close led pin: %w", err))
		}
	}
	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
