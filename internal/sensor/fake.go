package sensor

// FakeSource is a test double that returns scripted readings.
type FakeSource struct {
	// Readings are returned in order; the last one repeats.
	Readings []Reading

	index int

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeSource creates a FakeSource with the given readings.
func NewFakeSource(readings ...Reading) *FakeSource {
	return &FakeSource{Readings: readings}
}

// Latest returns the next scripted reading, or false if none are configured.
func (f *FakeSource) Latest() (Reading, bool) {
	if len(f.Readings) == 0 {
		return Reading{}, false
	}

	r := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}
	return r, true
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.Closed = true
	return nil
}
