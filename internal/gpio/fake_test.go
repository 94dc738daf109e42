package gpio

import (
	"errors"
	"testing"
)

func TestFakeReaderRead(t *testing.T) {
	samples := []Sample{
		{Left: true, Right: false},
		{Left: false, Right: true},
		{Left: true, Right: true},
	}

	f := NewFakeReader(samples)

	for i, want := range samples {
		left, right, err := f.Read()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if left != want.Left || right != want.Right {
			t.Errorf("sample %d: expected (%v, %v), got (%v, %v)", i, want.Left, want.Right, left, right)
		}
	}

	// Fourth read should repeat last sample
	left, right, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !left || !right {
		t.Errorf("repeat: expected (true, true), got (%v, %v)", left, right)
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)

	_, _, err := f.Read()
	if err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]Sample{{Left: true, Right: true}})
	f.ReadError = errors.New("simulated error")

	_, _, err := f.Read()
	if err == nil {
		t.Error("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeReaderCloseAndReset(t *testing.T) {
	f := NewFakeReader([]Sample{{Left: true}, {Right: true}})

	f.Read()
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed {
		t.Error("Reset should clear Closed")
	}
	left, right, _ := f.Read()
	if !left || right {
		t.Errorf("after reset: expected (true, false), got (%v, %v)", left, right)
	}
}

func TestFakeLED(t *testing.T) {
	var l FakeLED

	l.Set(true)
	l.Set(false)
	l.Set(true)
	if !l.On {
		t.Error("expected LED on")
	}
	if len(l.History) != 3 {
		t.Fatalf("history: got %d entries, want 3", len(l.History))
	}

	l.SetError = errors.New("line busy")
	if err := l.Set(false); err == nil {
		t.Error("expected error")
	}
	if !l.On {
		t.Error("failed Set must not change the level")
	}

	l.Close()
	if l.On || !l.Closed {
		t.Errorf("after close: On=%v Closed=%v", l.On, l.Closed)
	}
}

func TestInterfaces(t *testing.T) {
	var _ Reader = (*FakeReader)(nil)
	var _ Reader = (*RealReader)(nil)
	var _ LED = (*FakeLED)(nil)
	var _ LED = (*RealLED)(nil)
}
