package diarize

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// ExtractFeatures turns a mono waveform into one feature vector per
// fixed-length window: [mean, stddev] of the spectral energy across
// frequency bins. Windows are contiguous and non-overlapping; a
// trailing partial window is dropped so that window index i always
// maps to wall-clock time i*windowSeconds.
func ExtractFeatures(w model.Waveform, windowSeconds float64) ([][]float64, error) {
	if windowSeconds <= 0 {
		return nil, apperrors.ErrInvalidWindow
	}
	if w.Empty() || w.SampleRate <= 0 {
		return nil, apperrors.ErrEmptyWaveform
	}

	windowLen := int(windowSeconds * float64(w.SampleRate))
	if windowLen < 2 {
		return nil, apperrors.ErrInvalidWindow
	}
	numWindows := len(w.Samples) / windowLen
	if numWindows == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrEmptyWaveform,
			"waveform shorter than one %gs window", windowSeconds)
	}

	fft := fourier.NewFFT(windowLen)
	numBins := windowLen/2 + 1
	coeffs := make([]complex128, numBins)
	energies := make([]float64, numBins)

	features := make([][]float64, 0, numWindows)
	for i := 0; i < numWindows; i++ {
		segment := w.Samples[i*windowLen : (i+1)*windowLen]
		coeffs = fft.Coefficients(coeffs, segment)
		for b, c := range coeffs {
			m := cmplx.Abs(c)
			energies[b] = m * m
		}
		features = append(features, []float64{
			stat.Mean(energies, nil),
			stat.StdDev(energies, nil),
		})
	}
	return features, nil
}
