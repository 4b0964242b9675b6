// Package render draws the diagnostic plots for a finished decomposition.
package render

import (
	"fmt"

	"github.com/biolens/expca/matrix"
	"github.com/biolens/expca/pca"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// Scatter draws the samples projected on the first two components, one series
// per label class. With nil labels all samples share one series. The output
// format follows the file extension (png, svg, pdf).
func Scatter(result *pca.Result, labels matrix.Labels, title, path string) error {
	if result.Components() < 2 {
		return fmt.Errorf("scatter needs 2 components, got %d", result.Components())
	}

	coords, err := result.ProjectedCoordinates([]int{0, 1})
	if err != nil {
		return err
	}
	n, _ := coords.Dims()

	if labels == nil {
		labels = make(matrix.Labels, n)
		for i := range labels {
			labels[i] = "sample"
		}
	}
	if len(labels) != n {
		return fmt.Errorf("got %d labels for %d samples", len(labels), n)
	}

	xLabel, err := axisLabel(result, 0)
	if err != nil {
		return err
	}
	yLabel, err := axisLabel(result, 1)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	indices := labels.Indices()
	for c, class := range labels.Classes() {
		xys := make(plotter.XYs, 0, len(indices[class]))
		for _, j := range indices[class] {
			xys = append(xys, plotter.XY{X: coords.At(j, 0), Y: coords.At(j, 1)})
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("could not build scatter for %s: %w", class, err)
		}
		scatter.GlyphStyle.Color = plotutil.Color(c)
		scatter.GlyphStyle.Shape = plotutil.Shape(c)
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add(class, scatter)
	}
	p.Legend.Top = true

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("could not save scatter to %s: %w", path, err)
	}
	return nil
}

// VarianceBars draws one bar per component with its explained variance ratio,
// labelled PC1..PCk.
func VarianceBars(result *pca.Result, title, path string) error {
	ratios := result.Ratios()

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "explained variance ratio"

	bars, err := plotter.NewBarChart(plotter.Values(ratios), vg.Points(18))
	if err != nil {
		return fmt.Errorf("could not build bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)
	p.Add(bars)

	names := make([]string, len(ratios))
	for i := range ratios {
		names[i] = fmt.Sprintf("PC%d", i+1)
	}
	p.NominalX(names...)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("could not save bar chart to %s: %w", path, err)
	}
	return nil
}

// axisLabel renders a component axis label with its share of the variance,
// e.g. "PC1 (42.17%)".
func axisLabel(result *pca.Result, component int) (string, error) {
	ratio, err := result.ExplainedVarianceRatio(component)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PC%d (%.2f%%)", component+1, ratio*100), nil
}
