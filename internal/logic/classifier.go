package logic

import "time"

// CoincidenceWindow is the default time after the first press during which a
// press of the other button is folded into a single BOTH click.
const CoincidenceWindow = 100 * time.Millisecond

// contribution tracks one button's part in an open window.
type contribution struct {
	latched  bool
	released bool
}

func (k *contribution) observe(rise, fall bool) {
	if rise {
		k.latched = true
		k.released = false
	}
	if fall && k.latched {
		k.released = true
	}
}

// ButtonClassifier turns the levels of the left and right buttons into at
// most one Click per coincidence window.
type ButtonClassifier struct {
	window time.Duration

	open        bool
	windowStart time.Time
	left        contribution
	right       contribution

	// Levels seen on the previous call, for edge detection
	prevLeft  bool
	prevRight bool
}

// NewButtonClassifier creates a classifier with the given coincidence window.
func NewButtonClassifier(window time.Duration) *ButtonClassifier {
	return &ButtonClassifier{window: window}
}

// Classify takes the current pressed levels and returns the click decided on
// this call. It returns ClickNone while a window is open and between windows.
func (c *ButtonClassifier) Classify(left, right bool, now time.Time) Click {
	leftRise, leftFall := left && !c.prevLeft, !left && c.prevLeft
	rightRise, rightFall := right && !c.prevRight, !right && c.prevRight
	c.prevLeft, c.prevRight = left, right

	click := ClickNone
	if c.open {
		if now.Sub(c.windowStart) < c.window {
			c.left.observe(leftRise, leftFall)
			c.right.observe(rightRise, rightFall)
			return ClickNone
		}
		click = c.close()
	}

	// Edges on the expiry tick belong to the next window
	if leftRise || rightRise {
		c.open = true
		c.windowStart = now
		c.left.observe(leftRise, false)
		c.right.observe(rightRise, false)
	}

	return click
}

// WindowOpen reports whether a coincidence window is in progress. The daemon
// never asks; tests use it to observe the window.
func (c *ButtonClassifier) WindowOpen() bool {
	return c.open
}

func (c *ButtonClassifier) close() Click {
	var click Click
	switch {
	case c.left.latched && c.right.latched:
		click = ClickBoth
	case c.left.latched && !c.left.released:
		click = ClickLeft
	case c.right.latched && !c.right.released:
		click = ClickRight
	default:
		// A lone press released inside the window is a glitch
		click = ClickNone
	}

	c.open = false
	c.left = contribution{}
	c.right = contribution{}
	return click
}
