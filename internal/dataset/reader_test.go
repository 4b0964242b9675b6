package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biolens/expca/matrix"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
)

const matrixTSV = "gene\ts1\ts2\ts3\n" +
	"g1\t1.5\t2.5\t3.5\n" +
	"g2\t4\t4\t4\n" +
	"g3\t-1\t0\t1\n"

func TestParseMatrix(t *testing.T) {

	frame, err := ParseMatrix(strings.NewReader(matrixTSV), '\t')
	assert.NoError(t, err)

	p, n := frame.Dims()
	assert.Equal(t, 3, p)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"g1", "g2", "g3"}, frame.Features())
	assert.Equal(t, []string{"s1", "s2", "s3"}, frame.Samples())
	assert.Equal(t, 2.5, frame.At(0, 1))
	assert.Equal(t, -1.0, frame.At(2, 0))
}

func TestParseMatrix_Invalid(t *testing.T) {

	type test struct {
		input string
	}

	tests := map[string]test{
		"ragged-row": {
			input: "gene\ts1\ts2\ng1\t1\n",
		},
		"non-numeric": {
			input: "gene\ts1\ts2\ng1\t1\tx\n",
		},
		"no-samples": {
			input: "gene\n",
		},
		"no-rows": {
			input: "gene\ts1\ts2\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMatrix(strings.NewReader(tt.input), '\t')
			assert.Error(t, err)
		})
	}
}

func TestReadMatrix_Gzip(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "expr.tsv.gz")

	f, err := os.Create(path)
	assert.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(matrixTSV))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	assert.NoError(t, f.Close())

	frame, err := ReadMatrix(path)
	assert.NoError(t, err)
	p, n := frame.Dims()
	assert.Equal(t, 3, p)
	assert.Equal(t, 3, n)
}

func TestReadMatrix_CSV(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "expr.csv")
	err := os.WriteFile(path, []byte("gene,s1,s2\ng1,1,2\ng2,3,4\n"), 0644)
	assert.NoError(t, err)

	frame, err := ReadMatrix(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, frame.Samples())
	assert.Equal(t, 4.0, frame.At(1, 1))
}

func TestParseLabels(t *testing.T) {

	input := "s2\ttumor\ns1\tnormal\ns3\ttumor\n"

	labels, err := ParseLabels(strings.NewReader(input), '\t', []string{"s1", "s2", "s3"})
	assert.NoError(t, err)
	assert.Equal(t, matrix.Labels{"normal", "tumor", "tumor"}, labels)
}

func TestParseLabels_MissingSample(t *testing.T) {

	input := "s1\tnormal\n"

	_, err := ParseLabels(strings.NewReader(input), '\t', []string{"s1", "s2"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "s2")
}
