// Package logging builds the application's zap logger. Output goes to a
// rotated JSON file since the terminal belongs to the UI.
package logging

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/llehouerou/dexlog/internal/config"
)

const fileName = "dexlog/dexlog.log"

// Config is the log output configuration.
type Config struct {
	Level      string // debug, info, warn, error
	OutputPath string // empty means the xdg state dir
	MaxSize    int    // MB per file
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// FromConfig maps the application config onto a logging Config.
func FromConfig(c config.LoggingConfig) Config {
	return Config{
		Level:      c.Level,
		OutputPath: c.File,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     30,
		Compress:   true,
	}
}

// DefaultPath returns the log file under the xdg state dir.
func DefaultPath() (string, error) {
	return xdg.StateFile(fileName)
}

// New creates the file logger described by cfg.
func New(cfg Config) (*zap.Logger, error) {
	path := cfg.OutputPath
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("log path: %w", err)
		}
		path = p
	}
	return NewWriter(cfg.Level, &lumberjack.Logger{
		Filename:   filepath.Clean(path),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}

// NewWriter creates a JSON logger writing to w.
func NewWriter(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		lvl,
	)

	return zap.New(
		core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}
