package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/biolens/expca/infra/config"
	"github.com/biolens/expca/internal/analysis"
	"github.com/biolens/expca/internal/dataset"
	"github.com/biolens/expca/internal/render"
	"github.com/biolens/expca/internal/storage"
	jsonstorage "github.com/biolens/expca/internal/storage/file/json"
	"github.com/biolens/expca/matrix"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type settings struct {
	Threshold   float64 `json:"threshold"`
	Standardize bool    `json:"standardize"`
}

func main() {
	cfg := settings{
		Threshold:   matrix.DefaultVarianceThreshold,
		Standardize: true,
	}
	if err := config.Load("pca", &cfg); err != nil {
		log.Warn().Err(err).Msg("ignoring invalid config")
	}

	matrixPath := flag.String("matrix", "", "expression matrix file (tsv/csv, optionally gzipped)")
	labelsPath := flag.String("labels", "", "optional per-sample label file")
	name := flag.String("dataset", "", "dataset name, defaults to the matrix file name")
	outDir := flag.String("out", ".", "output directory for the plots")
	threshold := flag.Float64("threshold", cfg.Threshold, "variance filter threshold")
	standardize := flag.Bool("standardize", cfg.Standardize, "scale features to unit variance")
	store := flag.Bool("store", false, "persist the run report as json")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *matrixPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *name == "" {
		base := filepath.Base(*matrixPath)
		base = strings.TrimSuffix(base, ".gz")
		*name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if err := run(*matrixPath, *labelsPath, *name, *outDir, *threshold, *standardize, *store); err != nil {
		log.Error().Err(err).Str("dataset", *name).Msg("analysis failed")
		os.Exit(1)
	}
}

func run(matrixPath, labelsPath, name, outDir string, threshold float64, standardize, store bool) error {
	frame, err := dataset.ReadMatrix(matrixPath)
	if err != nil {
		return err
	}
	p, n := frame.Dims()
	log.Info().Str("dataset", name).Int("features", p).Int("samples", n).Msg("loaded expression matrix")

	var labels matrix.Labels
	if labelsPath != "" {
		labels, err = dataset.ReadLabels(labelsPath, frame.Samples())
		if err != nil {
			return err
		}
	}

	persistence := storage.Persistence(storage.NewVoidStorage())
	if store {
		persistence, err = jsonstorage.BlobShard(storage.ReportsDir)(name)
		if err != nil {
			return err
		}
	}

	runner := analysis.New(persistence)
	report, result, err := runner.Run(analysis.Request{
		Dataset:     name,
		Frame:       frame,
		Labels:      labels,
		Threshold:   threshold,
		Standardize: standardize,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create output dir %s: %w", outDir, err)
	}

	scatterPath := filepath.Join(outDir, fmt.Sprintf("%s_pca.png", name))
	if err := render.Scatter(result, labels, name, scatterPath); err != nil {
		return err
	}
	variancePath := filepath.Join(outDir, fmt.Sprintf("%s_variance.png", name))
	if err := render.VarianceBars(result, name, variancePath); err != nil {
		return err
	}
	log.Info().Str("scatter", scatterPath).Str("variance", variancePath).Msg("wrote plots")

	for i, ratio := range report.Ratios {
		fmt.Printf("PC%d\t%.4f\t%.2f%%\n", i+1, report.SDev[i], ratio*100)
	}
	return nil
}
