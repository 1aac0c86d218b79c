package model

// Waveform is a decoded mono audio signal. Multi-channel input is
// averaged down to one channel before it reaches this type.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the total length of the waveform in seconds.
func (w Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Empty reports whether the waveform carries no samples.
func (w Waveform) Empty() bool {
	return len(w.Samples) == 0
}
