// Package observability builds the zap loggers shared by the suite, the CLI and the
// local storefront.
package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/automationexercise/shopcheck/internal/config"
)

// NewLogger builds a logger writing to stderr and, when cfg.File is set, to a rotated
// JSON log file. Stdout is left to command output such as the run report.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	return NewLoggerWithWriter(cfg, zapcore.Lock(os.Stderr))
}

// NewLoggerWithWriter is NewLogger with an explicit console writer.
func NewLoggerWithWriter(cfg config.LogConfig, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(cfg.Format), console, level),
	}

	if cfg.File != "" {
		// the file always gets JSON so it can be machine-read after a run
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), file, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)), nil
}

func encoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(encCfg)
	}

	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder
	return zapcore.NewConsoleEncoder(encCfg)
}
