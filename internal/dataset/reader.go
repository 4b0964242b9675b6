// Package dataset reads preprocessed expression matrices and sample labels
// from delimited text files. It feeds the matrix and pca packages, which never
// touch the filesystem themselves.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biolens/expca/matrix"
	"github.com/klauspost/compress/gzip"
)

// ReadMatrix loads a features x samples expression matrix from a delimited
// file. The first row holds sample names, the first column feature names.
// Files ending in .csv use commas, everything else tabs; a .gz suffix is
// decompressed transparently.
func ReadMatrix(path string) (*matrix.Frame, error) {
	r, closer, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closer()

	return ParseMatrix(r, delimiter(path))
}

// ParseMatrix reads a delimited matrix from the given reader.
func ParseMatrix(r io.Reader, comma rune) (*matrix.Frame, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header has %d columns, need a feature column and at least one sample", len(header))
	}
	samples := header[1:]

	features := make([]string, 0)
	values := make([]float64, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read line %d: %w", line, err)
		}
		if len(record) != len(samples)+1 {
			return nil, fmt.Errorf("line %d has %d columns, expected %d", line, len(record), len(samples)+1)
		}
		features = append(features, record[0])
		for c, cell := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("could not parse value for %s/%s at line %d: %w", record[0], samples[c], line, err)
			}
			values = append(values, v)
		}
	}

	frame, err := matrix.NewFrame(features, samples, values)
	if err != nil {
		return nil, fmt.Errorf("could not build matrix: %w", err)
	}
	return frame, nil
}

// ReadLabels loads per-sample class labels from a two column file of
// sample and label, and aligns them to the given sample order.
func ReadLabels(path string, samples []string) (matrix.Labels, error) {
	r, closer, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closer()

	return ParseLabels(r, delimiter(path), samples)
}

// ParseLabels reads sample to label assignments and orders them by samples.
func ParseLabels(r io.Reader, comma rune, samples []string) (matrix.Labels, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = 2

	assigned := make(map[string]string)
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read label line %d: %w", line, err)
		}
		assigned[record[0]] = record[1]
	}

	labels := make(matrix.Labels, len(samples))
	for i, sample := range samples {
		label, ok := assigned[sample]
		if !ok {
			return nil, fmt.Errorf("no label for sample %s", sample)
		}
		labels[i] = label
	}
	return labels, nil
}

func delimiter(path string) rune {
	name := strings.TrimSuffix(path, ".gz")
	if filepath.Ext(name) == ".csv" {
		return ','
	}
	return '\t'
}

func open(path string) (io.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("could not open gzip stream %s: %w", path, err)
		}
		return gz, func() {
			gz.Close()
			f.Close()
		}, nil
	}
	return f, func() {
		f.Close()
	}, nil
}
