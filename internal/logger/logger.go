// Package logger builds the zap logger used by the command-line front end
// and forwards pipeline progress events to it.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/billycemerson/Spotify-Collab/internal/progress"
)

// Options controls how the logger writes.
type Options struct {
	// JSON selects structured output for machine consumption.
	JSON bool
	// Verbose enables debug entries, which carry verbose progress events.
	Verbose bool
	// Output defaults to stdout.
	Output io.Writer
}

// New builds a sugared logger.
func New(opts Options) *zap.SugaredLogger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	if opts.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		// Human-readable console output
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.CallerKey = zapcore.OmitKey
		cfg.StacktraceKey = zapcore.OmitKey
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	return zap.New(core).Sugar()
}

// Progress returns a progress callback that writes each event to log.
// Verbose events become debug entries; success events are info entries
// tagged with success=true.
func Progress(log *zap.SugaredLogger) progress.Func {
	return func(e progress.Event) {
		switch e.Level {
		case progress.LevelVerbose:
			log.Debug(e.Message)
		case progress.LevelWarning:
			log.Warn(e.Message)
		case progress.LevelError:
			log.Error(e.Message)
		case progress.LevelSuccess:
			log.Infow(e.Message, "success", true)
		default:
			log.Info(e.Message)
		}
	}
}
