package logic

import (
	"errors"
	"fmt"
	"time"
)

// RegistryCapacity is the maximum number of buttons a registry holds.
const RegistryCapacity = 10

var (
	ErrRegistryFull   = errors.New("button registry full")
	ErrDuplicateLabel = errors.New("duplicate button label")
)

// ButtonRegistry owns a fixed set of buttons, looked up by label.
type ButtonRegistry struct {
	buttons [RegistryCapacity]Button
	n       int
}

// Register appends b. It fails without touching existing entries when the
// registry is full or the label is already taken.
func (r *ButtonRegistry) Register(b Button) error {
	if r.find(b.Label) != nil {
		return fmt.Errorf("register %q: %w", b.Label, ErrDuplicateLabel)
	}
	if r.n == RegistryCapacity {
		return fmt.Errorf("register %q: %w", b.Label, ErrRegistryFull)
	}
	r.buttons[r.n] = b
	r.n++
	return nil
}

// Initialize registers a released button with the given label.
func (r *ButtonRegistry) Initialize(label string) error {
	return r.Register(Button{Label: label})
}

// Update sets the pressed level of the button with the given label.
// PressStart is only reset on a rising edge, so holding a button does not
// restart its long-press timer. Returns false if no button matches.
func (r *ButtonRegistry) Update(label string, pressed bool, now time.Time) (Edge, bool) {
	b := r.find(label)
	if b == nil {
		return EdgeNone, false
	}

	edge := EdgeNone
	switch {
	case pressed && !b.Pressed:
		edge = EdgeRising
		b.PressStart = now
	case !pressed && b.Pressed:
		edge = EdgeFalling
	}
	b.Pressed = pressed
	return edge, true
}

// Get returns a copy of the button with the given label.
func (r *ButtonRegistry) Get(label string) (Button, bool) {
	b := r.find(label)
	if b == nil {
		return Button{}, false
	}
	return *b, true
}

// Len returns the number of registered buttons.
func (r *ButtonRegistry) Len() int {
	return r.n
}

// Buttons returns a copy of all registered buttons in registration order.
func (r *ButtonRegistry) Buttons() []Button {
	out := make([]Button, r.n)
	copy(out, r.buttons[:r.n])
	return out
}

func (r *ButtonRegistry) find(label string) *Button {
	for i := 0; i < r.n; i++ {
		if r.buttons[i].Label == label {
			return &r.buttons[i]
		}
	}
	return nil
}
