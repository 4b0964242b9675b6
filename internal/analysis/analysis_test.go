package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/biolens/expca/internal/storage"
	"github.com/biolens/expca/matrix"
	"github.com/stretchr/testify/assert"
)

func testFrame(t *testing.T) *matrix.Frame {
	features := []string{"g1", "g2", "g3", "g4"}
	samples := []string{"s1", "s2", "s3", "s4", "s5"}
	values := make([]float64, 0, len(features)*len(samples))
	for i := range features {
		for j := range samples {
			if i == 3 {
				// constant feature, should be filtered out
				values = append(values, 2)
				continue
			}
			values = append(values, math.Sin(float64(3*i+j))+float64(i*j)*0.5)
		}
	}
	f, err := matrix.NewFrame(features, samples, values)
	assert.NoError(t, err)
	return f
}

func TestRunner_Run(t *testing.T) {

	store := storage.NewLocalStorage()
	runner := New(store)

	report, result, err := runner.Run(Request{
		Dataset:     "gse-test",
		Frame:       testFrame(t),
		Labels:      matrix.Labels{"a", "a", "b", "b", "b"},
		Threshold:   matrix.DefaultVarianceThreshold,
		Standardize: true,
	})
	assert.NoError(t, err)
	assert.NotNil(t, result)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "gse-test", report.Dataset)
	assert.Equal(t, 3, report.Features)
	assert.Equal(t, 5, report.Samples)
	assert.Equal(t, 1, report.Removal.Count())
	assert.Equal(t, "g4", report.Removal.Features[0].Name)

	var sum float64
	for _, ratio := range report.Ratios {
		sum += ratio
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// the report made it to the store
	var stored Report
	err = store.Load(storage.Key{Dataset: "gse-test", Run: report.ID, Label: "report"}, &stored)
	assert.NoError(t, err)
	assert.Equal(t, report.ID, stored.ID)
	assert.Equal(t, report.Ratios, stored.Ratios)
}

func TestRunner_Run_Invalid(t *testing.T) {

	type test struct {
		request Request
		err     error
	}

	single, err := matrix.NewFrame([]string{"g1"}, []string{"s1"}, []float64{1})
	assert.NoError(t, err)

	flat, err := matrix.NewFrame([]string{"g1"}, []string{"s1", "s2"}, []float64{1, 1})
	assert.NoError(t, err)

	tests := map[string]test{
		"no-frame": {
			request: Request{Dataset: "void"},
		},
		"label-mismatch": {
			request: Request{
				Dataset: "gse",
				Frame:   single,
				Labels:  matrix.Labels{"a", "b"},
			},
		},
		"single-sample": {
			request: Request{
				Dataset:   "gse",
				Frame:     single,
				Threshold: matrix.DefaultVarianceThreshold,
			},
			err: matrix.EmptyResultErr,
		},
		"all-filtered": {
			request: Request{
				Dataset:   "gse",
				Frame:     flat,
				Threshold: matrix.DefaultVarianceThreshold,
			},
			err: matrix.EmptyResultErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			runner := New(nil)
			_, _, err := runner.Run(tt.request)
			assert.Error(t, err)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
			}
		})
	}
}
