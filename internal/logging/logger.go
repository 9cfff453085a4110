// Package logging builds the zap loggers used by the command-line tools.
//
// Diagnostic output goes to stderr by default so that the lines the tools
// print for the user (renames, the generated playlist path) stay on stdout.
package logging

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describes logger construction parameters.
type Options struct {
	Level            string
	Format           string
	OutputPaths      []string
	ErrorOutputPaths []string
}

// New constructs a zap logger using the provided options.
//
// Unknown levels fall back to info. Format is "console" (default) or "json".
// Console output to a terminal gets coloured level names.
func New(opts Options) (*zap.Logger, error) {
	level := parseLevel(opts.Level)

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, errors.Errorf("log format: unsupported value %q", opts.Format)
	}

	outputs := defaultSlice(opts.OutputPaths, []string{"stderr"})
	errOutputs := defaultSlice(opts.ErrorOutputPaths, []string{"stderr"})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = ""
	if format == "console" {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.TimeKey = ""
		if colorize(outputs) {
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     level > zapcore.DebugLevel,
		DisableStacktrace: true,
		Encoding:          format,
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputs,
		ErrorOutputPaths:  errOutputs,
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

// NewCLI returns the logger used by the command-line tools: stderr output,
// debug level when verbose is set and warnings only otherwise.
func NewCLI(verbose bool, format string) (*zap.Logger, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return New(Options{Level: level, Format: format})
}

func parseLevel(value string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(value)))); err != nil || value == "" {
		return zapcore.InfoLevel
	}
	return level
}

// colorize reports whether every output is a terminal.
func colorize(outputs []string) bool {
	for _, out := range outputs {
		var f *os.File
		switch out {
		case "stderr":
			f = os.Stderr
		case "stdout":
			f = os.Stdout
		default:
			return false
		}
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return false
		}
	}
	return true
}

func defaultSlice(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
