package logic

import "fmt"

// Converter turns a raw ADC count into the sample value that is accumulated.
// It returns false for counts that cannot be converted.
type Converter func(raw int) (float64, bool)

// Identity accumulates raw counts unchanged.
func Identity(raw int) (float64, bool) {
	return float64(raw), true
}

// Divider describes a sensor resistance measured through a voltage divider
// against a fixed resistor.
type Divider struct {
	VDD        float64 // supply voltage
	Resolution int     // ADC full-scale count
	Resistor   float64 // fixed resistor in ohms
}

// DefaultDivider matches a 10-bit ADC on a 5 V supply with a 10k resistor.
var DefaultDivider = Divider{VDD: 5, Resolution: 1024, Resistor: 10000}

// Validate checks that the divider parameters are usable.
func (d Divider) Validate() error {
	if d.VDD <= 0 {
		return fmt.Errorf("divider vdd must be positive, got %v", d.VDD)
	}
	if d.Resolution <= 0 {
		return fmt.Errorf("divider resolution must be positive, got %d", d.Resolution)
	}
	if d.Resistor <= 0 {
		return fmt.Errorf("divider resistor must be positive, got %v", d.Resistor)
	}
	return nil
}

// Resistance converts a raw count to whole ohms. Counts at or above full
// scale have no finite resistance and are rejected.
func (d Divider) Resistance(raw int) (float64, bool) {
	if raw < 0 {
		return 0, false
	}
	voltage := d.VDD * float64(raw) / float64(d.Resolution)
	if voltage >= d.VDD {
		return 0, false
	}
	ohms := voltage * d.Resistor / (d.VDD - voltage)
	return float64(int64(ohms)), true
}
