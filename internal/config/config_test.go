package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swarajaya/Quantum-Image-Representation/encoding"
)

func TestWithDefaults(t *testing.T) {
	c := Config{}.WithDefaults()

	assert.Equal(t, defaultImageSize, c.ImageSize)
	assert.Equal(t, defaultOutputDir, c.OutputDir)
	assert.Equal(t, []string{"FRQI", "NEQR", "QRAM", "MCQI", "Amplitude"}, c.Schemes)
	assert.Equal(t, DefaultDatasets(), c.Datasets)
	assert.Equal(t, defaultWorkers, c.Workers)
	assert.Equal(t, defaultHybridThreshold, c.Threshold())
	assert.Equal(t, defaultCacheSize, c.CacheSize)
	require.NoError(t, c.Validate())

	custom := Config{ImageSize: 4, Workers: 1, Schemes: []string{"neqr"}}.WithDefaults()
	assert.Equal(t, 4, custom.ImageSize)
	assert.Equal(t, 1, custom.Workers)
	schemes, err := custom.ParsedSchemes()
	require.NoError(t, err)
	assert.Equal(t, []encoding.Scheme{encoding.NEQR}, schemes)
}

func threshold(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"image size", func(c *Config) { c.ImageSize = -1 }},
		{"workers", func(c *Config) { c.Workers = -2 }},
		{"threshold", func(c *Config) { c.HybridThreshold = threshold(1.5) }},
		{"transform", func(c *Config) { c.Transform = "shear" }},
		{"scheme", func(c *Config) { c.Schemes = []string{"FRQI", "HSV"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{}.WithDefaults()
			tt.modify(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qir.yaml")
	in := Config{
		ImageSize: 4,
		OutputDir: "results",
		Schemes:   []string{"FRQI", "MCQI"},
		Datasets:  map[string]string{"nist": "data/nist/img1.png"},
		Transform: TransformRotate,
	}
	require.NoError(t, in.Save(path))

	t.Setenv("QIR_CONFIG", "")
	t.Setenv("QIR_OUTPUT_DIR", filepath.Join(dir, "out"))
	t.Setenv("QIR_WORKERS", "2")
	t.Setenv("QIR_DEBUG", "true")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, c.ImageSize)
	assert.Equal(t, filepath.Join(dir, "out"), c.OutputDir)
	assert.Equal(t, 2, c.Workers)
	assert.True(t, c.Debug)
	assert.Equal(t, []string{"FRQI", "MCQI"}, c.Schemes)
	assert.Equal(t, map[string]string{"nist": "data/nist/img1.png"}, c.Datasets)
	assert.Equal(t, TransformRotate, c.Transform)
	assert.Equal(t, defaultHybridThreshold, c.Threshold())
}

func TestZeroThresholdIsKept(t *testing.T) {
	assert.Equal(t, 0.0, Config{HybridThreshold: threshold(0)}.WithDefaults().Threshold())

	path := filepath.Join(t.TempDir(), "qir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hybridThreshold: 0\n"), 0o644))
	t.Setenv("QIR_CONFIG", "")
	t.Setenv("QIR_OUTPUT_DIR", "")
	t.Setenv("QIR_WORKERS", "")
	t.Setenv("QIR_DEBUG", "")

	c, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, c.HybridThreshold)
	assert.Equal(t, 0.0, c.Threshold())

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, c.Save(out))
	again, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, 0.0, again.Threshold())
}

func TestLoadFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("imageSize: 8\nworkers: 3\n"), 0o644))
	t.Setenv("QIR_CONFIG", path)
	t.Setenv("QIR_OUTPUT_DIR", "")
	t.Setenv("QIR_WORKERS", "")
	t.Setenv("QIR_DEBUG", "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, c.ImageSize)
	assert.Equal(t, 3, c.Workers)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("QIR_CONFIG", "")
	t.Setenv("QIR_OUTPUT_DIR", "")
	t.Setenv("QIR_DEBUG", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("imageSize: [1, 2"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)

	t.Setenv("QIR_WORKERS", "many")
	_, err = Load("")
	require.Error(t, err)
}
