package logic

// SensorAccumulator keeps running sums of samples per channel between
// evaluation cycles.
type SensorAccumulator struct {
	sums   [NumChannels]float64
	counts [NumChannels]int
}

// Accumulate adds one sample to the channel's running sum.
func (a *SensorAccumulator) Accumulate(ch Channel, sample float64) {
	a.sums[ch] += sample
	a.counts[ch]++
}

// Average returns the mean of the accumulated samples. It returns false when
// the channel has no samples.
func (a *SensorAccumulator) Average(ch Channel) (float64, bool) {
	if a.counts[ch] == 0 {
		return 0, false
	}
	return a.sums[ch] / float64(a.counts[ch]), true
}

// Count returns the number of samples accumulated for the channel.
func (a *SensorAccumulator) Count(ch Channel) int {
	return a.counts[ch]
}

func (a *SensorAccumulator) reset() {
	a.sums = [NumChannels]float64{}
	a.counts = [NumChannels]int{}
}
