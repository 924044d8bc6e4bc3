// Package pipeline runs every configured scheme over every configured dataset
// image and records the resulting programs and their complexity.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Swarajaya/Quantum-Image-Representation/encoding"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
	"github.com/Swarajaya/Quantum-Image-Representation/internal/config"
	"github.com/Swarajaya/Quantum-Image-Representation/metrics"
)

// SummaryFile is the name of the run summary inside the output directory.
const SummaryFile = "summary.yaml"

// Failure reasons used as metric labels.
const (
	reasonNotFound     = "image_not_found"
	reasonPrecondition = "precondition"
	reasonDomain       = "out_of_domain"
	reasonDegenerate   = "degenerate"
	reasonOther        = "other"
)

// Result is the outcome of one scheme on one dataset.
type Result struct {
	Dataset        string  `yaml:"dataset"`
	Scheme         string  `yaml:"scheme"`
	metrics.Report `yaml:",inline"`
	Seconds        float64 `yaml:"seconds"`
	Output         string  `yaml:"output,omitempty"`
	Error          string  `yaml:"error,omitempty"`

	reason string
}

// HybridResult records the region-of-interest split of one dataset image.
type HybridResult struct {
	Dataset    string `yaml:"dataset"`
	ROI        int    `yaml:"roiPixels"`
	Background int    `yaml:"backgroundPixels"`
	Error      string `yaml:"error,omitempty"`
}

// Summary is everything one batch produced.
type Summary struct {
	RunID     string         `yaml:"runId"`
	Started   string         `yaml:"started"`
	ImageSize int            `yaml:"imageSize"`
	Transform string         `yaml:"transform,omitempty"`
	Results   []Result       `yaml:"results"`
	Hybrid    []HybridResult `yaml:"hybrid"`
}

// Pipeline synthesizes programs for a set of datasets.
type Pipeline struct {
	cfg     config.Config
	schemes []encoding.Scheme
	loader  *imaging.Loader
	metrics *Metrics
	logger  *zap.Logger
}

// New validates cfg and prepares a pipeline.
func New(cfg config.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, "new pipeline")
	}
	schemes, err := cfg.ParsedSchemes()
	if err != nil {
		return nil, err
	}
	loader, err := imaging.NewLoader(cfg.CacheSize, logger)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:     cfg,
		schemes: schemes,
		loader:  loader,
		metrics: NewMetrics(),
		logger:  logger,
	}, nil
}

// Run processes every dataset, at most cfg.Workers at a time. A dataset whose
// image cannot be loaded is recorded and skipped; Run fails only when the
// context ends or an output cannot be written.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run", runID))

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(err, "create output directory")
	}

	names := slices.Sorted(maps.Keys(p.cfg.Datasets))
	results := make([][]Result, len(names))
	hybrid := make([]HybridResult, len(names))

	logger.Info("batch started",
		zap.Int("datasets", len(names)),
		zap.Int("schemes", len(p.schemes)),
		zap.Int("workers", p.cfg.Workers),
	)
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, name := range names {
		g.Go(func() error {
			res, hy, err := p.runDataset(gctx, logger, name, p.cfg.Datasets[name])
			if err != nil {
				return pkgerrors.Wrapf(err, "dataset %s", name)
			}
			results[i] = res
			hybrid[i] = hy
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:     runID,
		Started:   started.UTC().Format(time.RFC3339),
		ImageSize: p.cfg.ImageSize,
		Transform: p.cfg.Transform,
		Results:   slices.Concat(results...),
		Hybrid:    hybrid,
	}
	if err := writeSummary(filepath.Join(p.cfg.OutputDir, SummaryFile), summary); err != nil {
		return nil, err
	}
	if p.cfg.MetricsFile != "" {
		if err := p.metrics.WriteTextfile(p.cfg.MetricsFile); err != nil {
			return nil, err
		}
	}

	logger.Info("batch finished",
		zap.Int("programs", len(summary.Results)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

func (p *Pipeline) runDataset(ctx context.Context, logger *zap.Logger, name, path string) ([]Result, HybridResult, error) {
	logger = logger.With(zap.String("dataset", name))
	hy := HybridResult{Dataset: name}

	in, err := p.load(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, hy, ctx.Err()
		}
		msg, reason := err.Error(), reasonOther
		var nf *imaging.ImageNotFoundError
		if errors.As(err, &nf) {
			msg, reason = "image not found", reasonNotFound
		}
		logger.Warn("skipping dataset", zap.String("path", path), zap.Error(err))

		results := make([]Result, 0, len(p.schemes))
		for _, s := range p.schemes {
			r := Result{Dataset: name, Scheme: s.String(), Error: msg, reason: reason}
			p.metrics.observe(r)
			results = append(results, r)
		}
		hy.Error = msg
		return results, hy, nil
	}

	results := make([]Result, 0, len(p.schemes))
	for _, s := range p.schemes {
		r, err := p.synthesize(name, s, in)
		if err != nil {
			return nil, hy, err
		}
		if r.Error != "" {
			logger.Warn("synthesis failed", zap.Stringer("scheme", s), zap.String("error", r.Error))
		} else {
			logger.Debug("synthesized",
				zap.Stringer("scheme", s),
				zap.Int("qubits", r.Qubits),
				zap.Int("gates", r.Gates),
				zap.Int("depth", r.Depth),
			)
		}
		p.metrics.observe(r)
		results = append(results, r)
	}

	if h, err := encoding.Hybrid(in.Gray, p.cfg.Threshold()); err != nil {
		hy.Error = err.Error()
	} else {
		hy.ROI, hy.Background = len(h.ROI), len(h.Background)
	}
	return results, hy, nil
}

// load reads the grayscale image, and the color image when MCQI runs, and
// applies the configured classical transform.
func (p *Pipeline) load(ctx context.Context, path string) (encoding.Input, error) {
	var in encoding.Input
	gray, err := p.loader.LoadGray(ctx, path, p.cfg.ImageSize)
	if err != nil {
		return in, err
	}
	in.Gray = gray
	if slices.Contains(p.schemes, encoding.MCQI) {
		if in.Color, err = p.loader.LoadRGB(ctx, path, p.cfg.ImageSize); err != nil {
			return in, err
		}
	}

	switch p.cfg.Transform {
	case config.TransformRotate:
		in.Gray, in.Color = imaging.Rot90(in.Gray), imaging.Rot90(in.Color)
	case config.TransformFlip:
		in.Gray, in.Color = imaging.FlipLR(in.Gray), imaging.FlipLR(in.Color)
	}
	return in, nil
}

// synthesize builds one program and writes it as QASM. Synthesis errors are
// recorded on the result; only a failed write is returned.
func (p *Pipeline) synthesize(dataset string, s encoding.Scheme, in encoding.Input) (Result, error) {
	r := Result{Dataset: dataset, Scheme: s.String()}

	start := time.Now()
	enc, err := encoding.Synthesize(s, in)
	r.Seconds = time.Since(start).Seconds()
	if err != nil {
		r.Error, r.reason = err.Error(), failureReason(err)
		return r, nil
	}
	r.Report = metrics.Analyze(enc.Program)

	r.Output = filepath.Join(p.cfg.OutputDir, OutputName(s, dataset))
	return r, writeProgram(r.Output, enc)
}

// writeProgram writes enc as QASM to path. A failed close is a failed write.
func writeProgram(path string, enc *encoding.Encoded) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrap(err, "create program file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = pkgerrors.Wrapf(cerr, "close %s", path)
		}
	}()
	return pkgerrors.Wrapf(enc.Program.WriteQASM(f), "write %s", path)
}

// OutputName is the QASM file name for a scheme and dataset.
func OutputName(s encoding.Scheme, dataset string) string {
	return fmt.Sprintf("%s_%s.qasm", strings.ToLower(s.String()), dataset)
}

func failureReason(err error) string {
	var (
		pre        *encoding.PreconditionError
		domain     *encoding.OutOfDomainError
		degenerate *encoding.DegenerateInputError
	)
	switch {
	case errors.As(err, &pre):
		return reasonPrecondition
	case errors.As(err, &domain):
		return reasonDomain
	case errors.As(err, &degenerate):
		return reasonDegenerate
	}
	return reasonOther
}
