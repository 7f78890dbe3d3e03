// Package logging coding=utf-8
// @Project : molstack
// @File    : logging.go
//
// Package logging builds the structured logger the driver and runners use
// for per-step progress lines and the duplicate-window-name warning. The
// step loader logs nothing when a template query key matches no
// placeholder. The Rust original prints these with bare println!; here
// they go through a real logger.
package logging

import "go.uber.org/zap"

// New builds a SugaredLogger. verbose raises the level to Debug;
// otherwise Info and above are emitted.
func New(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Noop returns a logger that discards everything, for tests that don't
// want log noise but still need a non-nil *zap.SugaredLogger.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
