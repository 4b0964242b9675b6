package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// EmptyResultErr signals that an operation left no usable rows behind.
	EmptyResultErr = errors.New("empty result")
)

// Frame is a dense features x samples expression matrix.
// Rows are features (genes), columns are samples. Row and column order
// is preserved by every operation.
type Frame struct {
	features []string
	samples  []string
	data     *mat.Dense
}

// NewFrame creates a frame from row-major values of size len(features) x len(samples).
func NewFrame(features, samples []string, values []float64) (*Frame, error) {
	p := len(features)
	n := len(samples)
	if p == 0 || n == 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d: %w", p, n, EmptyResultErr)
	}
	if len(values) != p*n {
		return nil, fmt.Errorf("expected %d values, got %d", p*n, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("missing or non-finite value at index %d (%s)", i, features[i/n])
		}
	}
	return &Frame{
		features: append([]string(nil), features...),
		samples:  append([]string(nil), samples...),
		data:     mat.NewDense(p, n, append([]float64(nil), values...)),
	}, nil
}

// Dims returns the number of features and samples.
func (f *Frame) Dims() (features, samples int) {
	return f.data.Dims()
}

// Features returns the ordered feature names.
func (f *Frame) Features() []string {
	return f.features
}

// Samples returns the ordered sample names.
func (f *Frame) Samples() []string {
	return f.samples
}

// At returns the value for feature i and sample j.
func (f *Frame) At(i, j int) float64 {
	return f.data.At(i, j)
}

// Row returns a copy of the values of feature i across all samples.
func (f *Frame) Row(i int) []float64 {
	return append([]float64(nil), f.data.RawRowView(i)...)
}

// Dense returns a copy of the underlying matrix.
func (f *Frame) Dense() *mat.Dense {
	return mat.DenseCopyOf(f.data)
}

// RowMean returns the mean of feature i over all samples.
func (f *Frame) RowMean(i int) float64 {
	return stat.Mean(f.data.RawRowView(i), nil)
}

// RowStdDev returns the sample standard deviation of feature i over all samples.
func (f *Frame) RowStdDev(i int) float64 {
	return stat.StdDev(f.data.RawRowView(i), nil)
}

// StdDevs returns the per-feature sample standard deviations in row order.
func (f *Frame) StdDevs() []float64 {
	p, _ := f.data.Dims()
	out := make([]float64, p)
	for i := 0; i < p; i++ {
		out[i] = f.RowStdDev(i)
	}
	return out
}
