// Package logging builds the zap loggers used by the command and the pipeline.
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// New returns a development logger when debug is set and a production logger
// otherwise. A non-empty file sends output there in addition to stderr.
func New(debug bool, file string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}

	logger, err := cfg.Build()
	return logger, errors.Wrap(err, "create logger")
}
