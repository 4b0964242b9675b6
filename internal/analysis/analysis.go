// Package analysis wires the loading, filtering, decomposition and reporting
// stages together. All logging happens here; the core packages stay silent.
package analysis

import (
	"fmt"
	"time"

	"github.com/biolens/expca/internal/metrics"
	"github.com/biolens/expca/internal/storage"
	"github.com/biolens/expca/matrix"
	"github.com/biolens/expca/pca"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Request describes one analysis run over an in-memory matrix.
type Request struct {
	Dataset     string
	Frame       *matrix.Frame
	Labels      matrix.Labels
	Threshold   float64
	Standardize bool
}

// Report summarises one finished run.
type Report struct {
	ID       string         `json:"id"`
	Dataset  string         `json:"dataset"`
	Created  time.Time      `json:"created"`
	Features int            `json:"features"`
	Samples  int            `json:"samples"`
	Removal  matrix.Removal `json:"removal"`
	SDev     []float64      `json:"sdev"`
	Ratios   []float64      `json:"ratios"`
}

// Runner executes analysis requests and persists their reports.
type Runner struct {
	store storage.Persistence
}

// New creates a runner backed by the given report store.
func New(store storage.Persistence) *Runner {
	if store == nil {
		store = storage.NewVoidStorage()
	}
	return &Runner{store: store}
}

// Run filters the request matrix, decomposes it and stores the run report.
// The returned result carries the scores and loadings for rendering.
func (r *Runner) Run(request Request) (*Report, *pca.Result, error) {
	if request.Frame == nil {
		return nil, nil, fmt.Errorf("no matrix supplied for dataset %s", request.Dataset)
	}
	if request.Labels != nil {
		_, n := request.Frame.Dims()
		if len(request.Labels) != n {
			return nil, nil, fmt.Errorf("got %d labels for %d samples", len(request.Labels), n)
		}
	}

	metrics.Observer.Increment(request.Dataset, "filter")
	filtered, removal, err := request.Frame.FilterLowVariance(request.Threshold)
	if err != nil {
		return nil, nil, fmt.Errorf("could not filter dataset %s: %w", request.Dataset, err)
	}
	if removal.Count() > 0 {
		metrics.Observer.AddFiltered(request.Dataset, removal.Count())
		log.Info().
			Str("dataset", request.Dataset).
			Int("removed", removal.Count()).
			Float64("threshold", request.Threshold).
			Msg("removed low variance features")
		for _, f := range removal.Features {
			log.Debug().
				Str("feature", f.Name).
				Float64("std-dev", f.StdDev).
				Msg("feature below variance threshold")
		}
	}

	metrics.Observer.Increment(request.Dataset, "decompose")
	result, err := pca.Compute(filtered, request.Standardize)
	if err != nil {
		return nil, nil, fmt.Errorf("could not decompose dataset %s: %w", request.Dataset, err)
	}

	p, n := filtered.Dims()
	report := &Report{
		ID:       uuid.New().String(),
		Dataset:  request.Dataset,
		Created:  time.Now(),
		Features: p,
		Samples:  n,
		Removal:  removal,
		SDev:     result.SDev(),
		Ratios:   result.Ratios(),
	}

	key := storage.Key{Dataset: request.Dataset, Run: report.ID, Label: "report"}
	if err := r.store.Store(key, report); err != nil {
		return nil, nil, fmt.Errorf("could not store report %s: %w", report.ID, err)
	}

	log.Info().
		Str("dataset", request.Dataset).
		Str("run", report.ID).
		Int("components", result.Components()).
		Float64("pc1-ratio", report.Ratios[0]).
		Msg("analysis complete")

	return report, result, nil
}
