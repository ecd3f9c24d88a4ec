//go:build windows

// Package stderr is a no-op on Windows, where the native file dialog does
// not write to stderr.
package stderr

import "go.uber.org/zap"

func Start(*zap.Logger) error { return nil }

func Stop() {}
