package logic

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return epoch.Add(time.Duration(n) * time.Millisecond)
}

// step is one scripted classifier input.
type step struct {
	at          int // milliseconds after epoch
	left, right bool
}

// run feeds steps into c and returns every non-NONE click with its time.
func run(c *ButtonClassifier, steps []step) map[int]Click {
	clicks := map[int]Click{}
	for _, s := range steps {
		if click := c.Classify(s.left, s.right, ms(s.at)); click != ClickNone {
			clicks[s.at] = click
		}
	}
	return clicks
}

func TestClassifierIdleReportsNone(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	for i := 0; i < 20; i++ {
		if click := c.Classify(false, false, ms(i*20)); click != ClickNone {
			t.Fatalf("tick %d: expected NONE, got %s", i, click)
		}
	}
	if c.WindowOpen() {
		t.Error("window should not open without a press")
	}
}

func TestClassifierSingleLeft(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	clicks := run(c, []step{
		{0, true, false},
		{20, true, false},
		{60, true, false},
		{100, true, false},
		{120, false, false},
	})

	if len(clicks) != 1 {
		t.Fatalf("expected 1 click, got %d: %v", len(clicks), clicks)
	}
	if clicks[100] != ClickLeft {
		t.Errorf("expected LEFT at 100ms, got %v", clicks)
	}
}

func TestClassifierSingleRight(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	clicks := run(c, []step{
		{0, false, true},
		{50, false, true},
		{110, false, true},
	})

	if clicks[110] != ClickRight || len(clicks) != 1 {
		t.Errorf("expected single RIGHT at 110ms, got %v", clicks)
	}
}

func TestClassifierCoincidenceWithinWindow(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	clicks := run(c, []step{
		{0, true, false},
		{20, true, false},
		{40, true, true},
		{80, true, true},
		{100, true, true},
		{140, true, true},
		{200, false, false},
	})

	if len(clicks) != 1 {
		t.Fatalf("expected exactly 1 click, got %d: %v", len(clicks), clicks)
	}
	if clicks[100] != ClickBoth {
		t.Errorf("expected BOTH at 100ms, got %v", clicks)
	}
}

func TestClassifierSimultaneousPress(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	clicks := run(c, []step{
		{0, true, true},
		{100, true, true},
	})

	if clicks[100] != ClickBoth {
		t.Errorf("expected BOTH, got %v", clicks)
	}
}

func TestClassifierNoClickWhileWindowOpen(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	c.Classify(true, false, ms(0))

	for at := 10; at < 100; at += 10 {
		if click := c.Classify(true, true, ms(at)); click != ClickNone {
			t.Fatalf("at %dms: expected NONE while window open, got %s", at, click)
		}
		if !c.WindowOpen() {
			t.Fatalf("at %dms: window should still be open", at)
		}
	}

	if click := c.Classify(true, true, ms(100)); click != ClickBoth {
		t.Errorf("expected BOTH at window close, got %s", click)
	}
	if c.WindowOpen() {
		t.Error("window should be closed after emission")
	}
}

func TestClassifierLoneGlitchIsIgnored(t *testing.T) {
	for _, releaseAt := range []int{10, 40, 90} {
		c := NewButtonClassifier(CoincidenceWindow)
		steps := []step{{0, true, false}}
		for at := 10; at <= 200; at += 10 {
			steps = append(steps, step{at, at < releaseAt, false})
		}
		if clicks := run(c, steps); len(clicks) != 0 {
			t.Errorf("release at %dms: expected no click, got %v", releaseAt, clicks)
		}
	}
}

func TestClassifierGlitchRepressedCounts(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	clicks := run(c, []step{
		{0, false, true},
		{30, false, false},
		{60, false, true},
		{100, false, true},
	})

	if clicks[100] != ClickRight {
		t.Errorf("expected RIGHT after re-press inside window, got %v", clicks)
	}
}

func TestClassifierTapCountsTowardBoth(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	clicks := run(c, []step{
		{0, true, false},
		{30, false, false},
		{50, false, true},
		{100, false, true},
	})

	if clicks[100] != ClickBoth {
		t.Errorf("expected latched contributions to yield BOTH, got %v", clicks)
	}
}

func TestClassifierLatePressStartsNewWindow(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	clicks := run(c, []step{
		{0, true, false},
		{60, true, false},
		// right arrives on the expiry tick: not part of the first window
		{100, true, true},
		{160, true, true},
		{200, true, true},
	})

	if len(clicks) != 2 {
		t.Fatalf("expected 2 clicks, got %v", clicks)
	}
	if clicks[100] != ClickLeft {
		t.Errorf("expected LEFT at 100ms, got %s", clicks[100])
	}
	if clicks[200] != ClickRight {
		t.Errorf("expected RIGHT at 200ms, got %s", clicks[200])
	}
}

func TestClassifierHeldButtonDoesNotRetrigger(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	var steps []step
	for at := 0; at <= 1000; at += 20 {
		steps = append(steps, step{at, true, false})
	}
	clicks := run(c, steps)

	if len(clicks) != 1 || clicks[100] != ClickLeft {
		t.Errorf("expected a single LEFT for a continuous hold, got %v", clicks)
	}
}

func TestClassifierOneClickPerWindow(t *testing.T) {
	c := NewButtonClassifier(CoincidenceWindow)
	clicks := run(c, []step{
		{0, true, false},
		{20, false, false},
		{40, true, false},
		{60, false, true},
		{80, true, false},
		{100, false, false},
		{120, false, false},
		{300, false, false},
	})

	if len(clicks) != 1 || clicks[100] != ClickBoth {
		t.Errorf("expected one BOTH, got %v", clicks)
	}
}
