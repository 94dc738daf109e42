// Package gpio provides button input reading and status LED output with
// hardware abstraction. The real implementation uses the Linux GPIO
// character device. The fakes allow testing without hardware.
package gpio

// Reader reads the front-panel buttons.
type Reader interface {
	// Read returns the logical pressed states of the left and right buttons.
	// The buttons pull the line low when pressed.
	Read() (left, right bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// LED drives the status LED.
type LED interface {
	Set(on bool) error
	Close() error
}

// Default pin definitions (BCM numbering)
const (
	DefaultPinLeft  = 17
	DefaultPinRight = 27
	DefaultPinLED   = 22
)

// DefaultChip is the GPIO character device on a Raspberry Pi.
const DefaultChip = "gpiochip0"
