package pca

import (
	"errors"
	"fmt"
	"math"

	"github.com/biolens/expca/matrix"
	"gonum.org/v1/gonum/mat"
)

var (
	// DegenerateInputErr signals that no components could be extracted.
	DegenerateInputErr = errors.New("degenerate input")
	// IndexOutOfRangeErr signals a component index beyond what was computed.
	IndexOutOfRangeErr = errors.New("component index out of range")
)

// Result holds the outcome of a principal component decomposition.
// All fields are computed once and read-only thereafter.
type Result struct {
	sdev     []float64
	loadings *mat.Dense
	scores   *mat.Dense
	mean     []float64
	scale    []float64
	totalVar float64
}

// Compute runs a principal component analysis on the given frame.
//
// The frame is read as features x samples and transposed internally, so the
// decomposition operates on the samples x features matrix. Each feature is
// centered on its mean; with standardize it is additionally scaled to unit
// standard deviation, which is the right policy whenever features live on
// heterogeneous scales. The decomposition is a thin SVD of the prepared
// matrix, which avoids forming the covariance matrix explicitly.
//
// The number of components is min(N-1, p): centering removes one degree of
// freedom. Singular values come back sorted non-increasing, and identical
// input always yields the identical ordering.
func Compute(frame *matrix.Frame, standardize bool) (*Result, error) {
	p, n := frame.Dims()
	if p < 1 {
		return nil, fmt.Errorf("no features to decompose: %w", DegenerateInputErr)
	}
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d: %w", n, DegenerateInputErr)
	}

	mean := make([]float64, p)
	scale := make([]float64, p)
	for i := 0; i < p; i++ {
		mean[i] = frame.RowMean(i)
		scale[i] = 1
		if standardize {
			sd := frame.RowStdDev(i)
			if sd == 0 {
				return nil, fmt.Errorf("feature %s has zero variance, cannot standardize: %w", frame.Features()[i], DegenerateInputErr)
			}
			scale[i] = sd
		}
	}

	// samples x features, centered and scaled per feature
	x := mat.NewDense(n, p, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < n; j++ {
			x.Set(j, i, (frame.At(i, j)-mean[i])/scale[i])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd factorization failed: %w", DegenerateInputErr)
	}

	values := svd.Values(nil)
	k := n - 1
	if p < k {
		k = p
	}
	if k > len(values) {
		k = len(values)
	}
	if k == 0 {
		return nil, fmt.Errorf("no components extracted: %w", DegenerateInputErr)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	sdev := make([]float64, k)
	norm := math.Sqrt(float64(n - 1))
	var total float64
	for i := 0; i < k; i++ {
		sdev[i] = values[i] / norm
		total += sdev[i] * sdev[i]
	}
	if total == 0 {
		return nil, fmt.Errorf("all singular values are zero: %w", DegenerateInputErr)
	}

	// scores = U * Sigma, truncated to k components
	scores := mat.NewDense(n, k, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < k; i++ {
			scores.Set(j, i, u.At(j, i)*values[i])
		}
	}

	loadings := mat.NewDense(p, k, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < k; j++ {
			loadings.Set(i, j, v.At(i, j))
		}
	}

	return &Result{
		sdev:     sdev,
		loadings: loadings,
		scores:   scores,
		mean:     mean,
		scale:    scale,
		totalVar: total,
	}, nil
}

// Components returns the number of extracted components.
func (r *Result) Components() int {
	return len(r.sdev)
}

// SDev returns the component standard deviations, sorted non-increasing.
func (r *Result) SDev() []float64 {
	return append([]float64(nil), r.sdev...)
}

// Mean returns the per-feature means used for centering.
func (r *Result) Mean() []float64 {
	return append([]float64(nil), r.mean...)
}

// Scale returns the per-feature scales used for standardization.
func (r *Result) Scale() []float64 {
	return append([]float64(nil), r.scale...)
}

// Loadings returns a copy of the features x components loading matrix.
func (r *Result) Loadings() *mat.Dense {
	return mat.DenseCopyOf(r.loadings)
}

// Scores returns a copy of the samples x components score matrix.
func (r *Result) Scores() *mat.Dense {
	return mat.DenseCopyOf(r.scores)
}

// ExplainedVarianceRatio returns the fraction of total variance captured by
// component k (0-indexed).
func (r *Result) ExplainedVarianceRatio(k int) (float64, error) {
	if k < 0 || k >= len(r.sdev) {
		return 0, fmt.Errorf("component %d of %d: %w", k, len(r.sdev), IndexOutOfRangeErr)
	}
	return r.sdev[k] * r.sdev[k] / r.totalVar, nil
}

// Ratios returns the explained variance ratio of every component in order.
func (r *Result) Ratios() []float64 {
	out := make([]float64, len(r.sdev))
	for i, sd := range r.sdev {
		out[i] = sd * sd / r.totalVar
	}
	return out
}

// ProjectedCoordinates returns the sample scores restricted to the requested
// components, preserving sample order.
func (r *Result) ProjectedCoordinates(components []int) (*mat.Dense, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("no components requested: %w", IndexOutOfRangeErr)
	}
	for _, c := range components {
		if c < 0 || c >= len(r.sdev) {
			return nil, fmt.Errorf("component %d of %d: %w", c, len(r.sdev), IndexOutOfRangeErr)
		}
	}
	n, _ := r.scores.Dims()
	out := mat.NewDense(n, len(components), nil)
	for j := 0; j < n; j++ {
		for i, c := range components {
			out.Set(j, i, r.scores.At(j, c))
		}
	}
	return out, nil
}
