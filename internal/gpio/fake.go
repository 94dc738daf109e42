package gpio

import "errors"

// FakeReader is a test double that returns scripted button levels.
type FakeReader struct {
	// Samples contains scripted (left, right) values to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Sample represents a single button reading (already in logical form).
type Sample struct {
	Left  bool // true = pressed
	Right bool
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.Left, sample.Right, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeLED records every level written to it.
type FakeLED struct {
	On      bool
	History []bool
	Closed  bool

	// SetError, if set, will be returned by Set()
	SetError error
}

// Set records the level.
func (l *FakeLED) Set(on bool) error {
	if l.SetError != nil {
		return l.SetError
	}
	l.On = on
	l.History = append(l.History, on)
	return nil
}

// Close marks the LED as closed and switches it off.
func (l *FakeLED) Close() error {
	l.On = false
	l.Closed = true
	return nil
}
