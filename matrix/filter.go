package matrix

import (
	"fmt"
)

// DefaultVarianceThreshold is the standard deviation below which a feature
// carries no usable signal for the decomposition.
const DefaultVarianceThreshold = 0.001

// RemovedFeature identifies one feature dropped by the variance filter.
type RemovedFeature struct {
	Name   string  `json:"name"`
	Index  int     `json:"index"`
	StdDev float64 `json:"std_dev"`
}

// Removal reports which features the variance filter dropped.
// It is informational only; the caller decides whether to log it.
type Removal struct {
	Threshold float64          `json:"threshold"`
	Features  []RemovedFeature `json:"features"`
}

// Count returns the number of removed features.
func (r Removal) Count() int {
	return len(r.Features)
}

// FilterLowVariance returns a new frame containing only the features whose
// sample standard deviation is at least threshold, together with a report of
// the removed rows. Sample order and the relative order of retained features
// are preserved.
func (f *Frame) FilterLowVariance(threshold float64) (*Frame, Removal, error) {
	p, n := f.data.Dims()
	removal := Removal{Threshold: threshold}
	if n < 2 {
		return nil, removal, fmt.Errorf("need at least 2 samples for a standard deviation, got %d: %w", n, EmptyResultErr)
	}

	kept := make([]int, 0, p)
	for i := 0; i < p; i++ {
		sd := f.RowStdDev(i)
		if sd < threshold {
			removal.Features = append(removal.Features, RemovedFeature{Name: f.features[i], Index: i, StdDev: sd})
			continue
		}
		kept = append(kept, i)
	}

	if len(kept) == 0 {
		return nil, removal, fmt.Errorf("variance filter removed all %d features: %w", p, EmptyResultErr)
	}

	features := make([]string, len(kept))
	values := make([]float64, 0, len(kept)*n)
	for k, i := range kept {
		features[k] = f.features[i]
		values = append(values, f.data.RawRowView(i)...)
	}

	filtered, err := NewFrame(features, f.samples, values)
	if err != nil {
		return nil, removal, err
	}
	return filtered, removal, nil
}
