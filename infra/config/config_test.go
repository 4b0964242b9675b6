package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type settings struct {
	Threshold   float64 `json:"threshold"`
	Standardize bool    `json:"standardize"`
}

func chdirTemp(t *testing.T) {
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		assert.NoError(t, os.Chdir(wd))
	})
	assert.NoError(t, os.MkdirAll(path, 0755))
}

func TestLoad(t *testing.T) {

	chdirTemp(t)

	cfg := settings{Threshold: 0.001, Standardize: true}

	// a missing file keeps the defaults
	assert.NoError(t, Load("pca", &cfg))
	assert.Equal(t, 0.001, cfg.Threshold)

	err := os.WriteFile(path+"/pca.json", []byte(`{"threshold":0.05,"standardize":false}`), 0644)
	assert.NoError(t, err)
	assert.NoError(t, Load("pca", &cfg))
	assert.Equal(t, 0.05, cfg.Threshold)
	assert.False(t, cfg.Standardize)
}

func TestLoad_Invalid(t *testing.T) {

	chdirTemp(t)

	var cfg settings

	// malformed json is an error
	assert.NoError(t, os.WriteFile(path+"/broken.json", []byte("{"), 0644))
	assert.Error(t, Load("broken", &cfg))

	// a present but unreadable entry is an error, not a silent fallback
	assert.NoError(t, os.MkdirAll(path+"/dir.json", 0755))
	assert.Error(t, Load("dir", &cfg))
}
