package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/encoding"
	"github.com/Swarajaya/Quantum-Image-Representation/geometry"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
	"github.com/Swarajaya/Quantum-Image-Representation/internal/config"
	"github.com/Swarajaya/Quantum-Image-Representation/internal/pipeline"
	"github.com/Swarajaya/Quantum-Image-Representation/internal/tui"
	"github.com/Swarajaya/Quantum-Image-Representation/metrics"
)

func runBatch(ctx context.Context, args []string) error {
	fs := newFlagSet("batch")
	configPath := fs.String("config", "", "YAML configuration file (default $QIR_CONFIG)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := setup(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	p, err := pipeline.New(*cfg, logger)
	if err != nil {
		return err
	}
	summary, err := p.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(summary.Table())
	return nil
}

// imageSize resolves the -size flag: zero means the configured size.
func imageSize(flagSize int, cfg *config.Config) (int, error) {
	if flagSize == 0 {
		flagSize = cfg.ImageSize
	}
	if flagSize < 1 {
		return 0, errors.Errorf("-size must be positive, got %d", flagSize)
	}
	return flagSize, nil
}

// loadInput reads the image at path in both gray and color form.
func loadInput(ctx context.Context, logger *zap.Logger, path string, size int) (encoding.Input, error) {
	var in encoding.Input
	loader, err := imaging.NewLoader(1, logger)
	if err != nil {
		return in, err
	}
	if in.Gray, err = loader.LoadGray(ctx, path, size); err != nil {
		return in, err
	}
	in.Color, err = loader.LoadRGB(ctx, path, size)
	return in, err
}

func runEncode(ctx context.Context, args []string) error {
	fs := newFlagSet("encode")
	schemeName := fs.String("scheme", encoding.FRQI.String(), "encoding scheme: FRQI, NEQR, QRAM, MCQI or Amplitude")
	imagePath := fs.String("image", "", "image file to encode")
	size := fs.Int("size", 0, "side length the image is resized to (default from config)")
	out := fs.String("o", "", "write the program as QASM to this file instead of stdout")
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *imagePath == "" {
		return errors.New("-image is required")
	}

	cfg, logger, err := setup(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if *size, err = imageSize(*size, cfg); err != nil {
		return err
	}

	scheme, err := encoding.ParseScheme(*schemeName)
	if err != nil {
		return err
	}
	in, err := loadInput(ctx, logger, *imagePath, *size)
	if err != nil {
		return err
	}
	enc, err := encoding.Synthesize(scheme, in)
	if err != nil {
		return err
	}

	report := metrics.Analyze(enc.Program)
	logger.Info("encoded image",
		zap.String("image", *imagePath),
		zap.Stringer("scheme", scheme),
		zap.Int("qubits", report.Qubits),
		zap.Int("gates", report.Gates),
		zap.Int("depth", report.Depth),
	)

	if *out == "" {
		fmt.Print(enc.Program.QASM())
	} else if err := writeFile(*out, enc.Program.QASM()); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, report)
	return nil
}

func runAnalyze(args []string) error {
	fs := newFlagSet("analyze")
	hflip := fs.String("hflip", "", "horizontal flip on these qubits, e.g. 0,1")
	vflip := fs.String("vflip", "", "vertical flip on these qubits")
	reflect := fs.String("reflect", "", "reflect (swap) a pair of qubits, e.g. 0,1")
	filter := fs.Int("filter", -1, "interference filter on this qubit")
	rotate := fs.String("rotate", "", "quarter turn over these position qubits, rows first")
	out := fs.String("o", "", "write the rewritten program to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected one QASM file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return errors.Wrap(err, "read program")
	}
	p, err := circuit.ParseQASM(string(data))
	if err != nil {
		return errors.Wrapf(err, "parse %s", fs.Arg(0))
	}
	before := metrics.Analyze(p)

	if err := applyRewrites(p, *hflip, *vflip, *reflect, *filter, *rotate); err != nil {
		return err
	}

	after := metrics.Analyze(p)
	fmt.Printf("before: %s\n", before)
	fmt.Printf("after:  %s\n", after)
	fmt.Println(criticalPath(p))
	if *out != "" {
		return writeFile(*out, p.QASM())
	}
	return nil
}

// criticalPath lists the longest chain of dependent gates of p.
func criticalPath(p *circuit.Program) string {
	path := circuit.BuildDAG(p).CriticalPath()
	steps := make([]string, len(path))
	for i, idx := range path {
		g := p.At(idx)
		steps[i] = fmt.Sprintf("%s%v", g.Kind, g.Qubits(p.NumQubits))
	}
	return fmt.Sprintf("critical path (%d): %s", len(path), strings.Join(steps, " -> "))
}

// applyRewrites appends the requested rewrites in a fixed order:
// horizontal flip, vertical flip, reflect, filter, rotate.
func applyRewrites(p *circuit.Program, hflip, vflip, reflect string, filter int, rotate string) error {
	if hflip != "" {
		qubits, err := parseQubits(hflip)
		if err != nil {
			return errors.Wrap(err, "-hflip")
		}
		if err := geometry.HorizontalFlip(p, qubits...); err != nil {
			return err
		}
	}
	if vflip != "" {
		qubits, err := parseQubits(vflip)
		if err != nil {
			return errors.Wrap(err, "-vflip")
		}
		if err := geometry.VerticalFlip(p, qubits...); err != nil {
			return err
		}
	}
	if reflect != "" {
		pair, err := parseQubits(reflect)
		if err != nil {
			return errors.Wrap(err, "-reflect")
		}
		if len(pair) != 2 {
			return errors.Errorf("-reflect: expected two qubits, got %d", len(pair))
		}
		if err := geometry.Reflect(p, pair[0], pair[1]); err != nil {
			return err
		}
	}
	if filter >= 0 {
		if err := geometry.Filter(p, filter); err != nil {
			return err
		}
	}
	if rotate != "" {
		qubits, err := parseQubits(rotate)
		if err != nil {
			return errors.Wrap(err, "-rotate")
		}
		if err := geometry.Rotate90(p, qubits); err != nil {
			return err
		}
	}
	return nil
}

// parseQubits reads a comma-separated list of qubit indices.
func parseQubits(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	qubits := make([]int, 0, len(parts))
	for _, part := range parts {
		q, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "qubit %q", part)
		}
		qubits = append(qubits, q)
	}
	return qubits, nil
}

func runView(ctx context.Context, args []string) error {
	fs := newFlagSet("view")
	imagePath := fs.String("image", "", "image file to view")
	size := fs.Int("size", 0, "side length the image is resized to (default from config)")
	saveDir := fs.String("o", ".", "directory ^S saves programs to")
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *imagePath == "" {
		return errors.New("-image is required")
	}

	cfg, logger, err := setup(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if *size, err = imageSize(*size, cfg); err != nil {
		return err
	}

	in, err := loadInput(ctx, logger, *imagePath, *size)
	if err != nil {
		return err
	}
	return tui.Run(in, *saveDir)
}

func runReport(args []string) error {
	fs := newFlagSet("report")
	configPath := fs.String("config", "", "YAML configuration file, used to find the output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var path string
	switch fs.NArg() {
	case 0:
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		path = filepath.Join(cfg.OutputDir, pipeline.SummaryFile)
	case 1:
		path = fs.Arg(0)
	default:
		fs.Usage()
		return errors.New("expected at most one summary file")
	}

	summary, err := pipeline.ReadSummary(path)
	if err != nil {
		return err
	}
	fmt.Printf("run %s started %s, image size %d\n", summary.RunID, summary.Started, summary.ImageSize)
	fmt.Println(summary.Table())
	return nil
}

func runInit(args []string) error {
	fs := newFlagSet("init")
	out := fs.String("o", "qir.yaml", "configuration file to create")
	force := fs.Bool("f", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(*out); err == nil && !*force {
		return errors.Errorf("%s already exists, use -f to overwrite", *out)
	}
	if err := (config.Config{}).WithDefaults().Save(*out); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *out)
	return nil
}
