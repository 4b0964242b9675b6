package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestObserver(t *testing.T) {

	Observer.Increment("gse", "filter")
	Observer.Increment("gse", "decompose")
	Observer.AddFiltered("gse", 3)

	families, err := prometheus.DefaultGatherer.Gather()
	assert.NoError(t, err)

	names := make(map[string]struct{})
	for _, family := range families {
		names[family.GetName()] = struct{}{}
	}
	assert.Contains(t, names, "expca_stages")
	assert.Contains(t, names, "expca_filtered_features")
}
