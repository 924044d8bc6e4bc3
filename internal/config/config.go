// Package config loads the benchmark configuration from a YAML file, a .env
// file and QIR_* environment variables, in increasing precedence.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/Swarajaya/Quantum-Image-Representation/encoding"
)

const (
	defaultImageSize       = 2
	defaultOutputDir       = "outputs"
	defaultWorkers         = 4
	defaultHybridThreshold = 0.6
	defaultCacheSize       = 64
)

// Transform values select the classical transform applied to every image
// before synthesis.
const (
	TransformNone   = ""
	TransformRotate = "rotate"
	TransformFlip   = "flip"
)

// Config holds every batch setting.
type Config struct {
	// Side length images are resized to before synthesis.
	ImageSize int `yaml:"imageSize"`
	// Directory receiving QASM programs and the run summary.
	OutputDir string `yaml:"outputDir"`
	// Scheme names to synthesize; every scheme when empty.
	Schemes []string `yaml:"schemes"`
	// Dataset name to image path.
	Datasets map[string]string `yaml:"datasets"`
	// Number of datasets processed concurrently.
	Workers int `yaml:"workers"`
	// Intensity above which a pixel belongs to the hybrid region of interest.
	// Unset means 0.6; an explicit 0 is kept.
	HybridThreshold *float64 `yaml:"hybridThreshold,omitempty"`
	// Classical transform applied before synthesis.
	// Options: "", "rotate", "flip".
	Transform string `yaml:"transform"`
	// Prometheus textfile written after the batch, skipped when empty.
	MetricsFile string `yaml:"metricsFile"`
	// Number of decoded images kept in the loader cache.
	CacheSize int `yaml:"cacheSize"`
	Debug     bool   `yaml:"debug"`
	LogFile   string `yaml:"logFile"`
}

// DefaultDatasets returns the dataset layout the benchmark ships with.
func DefaultDatasets() map[string]string {
	return map[string]string{
		"brain_tumor":   "data/brain_tumor/img1.png",
		"nist":          "data/nist/img1.png",
		"sar_earthdata": "data/sar_earthdata/img1.png",
		"sar_iceye":     "data/sar_iceye/img1.png",
		"ssdd_ship":     "data/ssdd_ship/img1.png",
	}
}

// WithDefaults returns a copy of the Config with any missing fields set to
// their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	if cpy.ImageSize == 0 {
		cpy.ImageSize = defaultImageSize
	}
	if cpy.OutputDir == "" {
		cpy.OutputDir = defaultOutputDir
	}
	if len(cpy.Schemes) == 0 {
		for _, s := range encoding.Schemes() {
			cpy.Schemes = append(cpy.Schemes, s.String())
		}
	}
	if len(cpy.Datasets) == 0 {
		cpy.Datasets = DefaultDatasets()
	}
	if cpy.Workers == 0 {
		cpy.Workers = defaultWorkers
	}
	if cpy.HybridThreshold == nil {
		threshold := defaultHybridThreshold
		cpy.HybridThreshold = &threshold
	}
	if cpy.CacheSize == 0 {
		cpy.CacheSize = defaultCacheSize
	}
	return cpy
}

// Validate reports the first setting the pipeline cannot run with.
func (c Config) Validate() error {
	if c.ImageSize < 1 {
		return errors.Errorf("imageSize must be positive, got %d", c.ImageSize)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if t := c.Threshold(); t < 0 || t > 1 {
		return errors.Errorf("hybridThreshold must lie in [0,1], got %g", t)
	}
	switch c.Transform {
	case TransformNone, TransformRotate, TransformFlip:
	default:
		return errors.Errorf("unknown transform %q", c.Transform)
	}
	_, err := c.ParsedSchemes()
	return err
}

// Threshold returns the hybrid threshold, or its default when unset.
func (c Config) Threshold() float64 {
	if c.HybridThreshold == nil {
		return defaultHybridThreshold
	}
	return *c.HybridThreshold
}

// ParsedSchemes resolves the configured scheme names.
func (c Config) ParsedSchemes() ([]encoding.Scheme, error) {
	schemes := make([]encoding.Scheme, 0, len(c.Schemes))
	for _, name := range c.Schemes {
		s, err := encoding.ParseScheme(name)
		if err != nil {
			return nil, errors.Wrap(err, "schemes")
		}
		schemes = append(schemes, s)
	}
	return schemes, nil
}

// Load reads the configuration. The file is path, or QIR_CONFIG when path is
// empty; without either only defaults and the environment apply. Values from
// .env in the working directory are visible as environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")

	if path == "" {
		path = os.Getenv("QIR_CONFIG")
	}

	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("QIR_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("QIR_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "QIR_DEBUG")
		}
		c.Debug = debug
	}
	if v := os.Getenv("QIR_WORKERS"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "QIR_WORKERS")
		}
		c.Workers = workers
	}
	return nil
}

// Save writes c as YAML to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}
