// Command qirbench synthesizes quantum image representation programs and
// reports their complexity.
//
//	qirbench batch   [-config qir.yaml]
//	qirbench encode  -scheme FRQI -image img.png [-size 2] [-o out.qasm]
//	qirbench analyze [-hflip 0,1] [-vflip 0,1] [-reflect 0,1] [-filter 2] [-rotate 0,1] [-o out.qasm] prog.qasm
//	qirbench view    -image img.png [-size 2] [-o dir]
//	qirbench report  [-config qir.yaml] [summary.yaml]
//	qirbench init    [-o qir.yaml] [-f]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Swarajaya/Quantum-Image-Representation/internal/config"
	"github.com/Swarajaya/Quantum-Image-Representation/internal/logging"
)

const usage = `usage: qirbench <command> [flags]

commands:
  batch    run every scheme over every configured dataset
  encode   synthesize one scheme for one image
  analyze  apply rewrites to a QASM program and report its complexity
  view     open the interactive circuit viewer for one image
  report   print the table of a finished batch
  init     write a configuration file holding the defaults
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "batch":
		err = runBatch(ctx, args)
	case "encode":
		err = runEncode(ctx, args)
	case "analyze":
		err = runAnalyze(args)
	case "view":
		err = runView(ctx, args)
	case "report":
		err = runReport(args)
	case "init":
		err = runInit(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "qirbench: unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "qirbench %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every command shares.
func setup(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Debug, cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: qirbench %s [flags]\n", name)
		fs.PrintDefaults()
	}
	return fs
}

func writeFile(path, content string) error {
	return errors.Wrapf(os.WriteFile(path, []byte(content), 0o644), "write %s", path)
}
