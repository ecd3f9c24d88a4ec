//go:build !windows

// Package stderr captures what C code (the gtk file dialog) writes to file
// descriptor 2 and sends it to the log, so it never lands on the TUI.
package stderr

import (
	"errors"
	"os"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

type capture struct {
	saved int
	r, w  *os.File
	done  chan struct{}
}

var (
	mu     sync.Mutex
	active *capture
)

// Start redirects fd 2 into logger until Stop. Call it before the first
// file dialog opens. On error stderr is left untouched.
func Start(logger *zap.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	fd := int(os.Stderr.Fd())
	saved, err := syscall.Dup(fd)
	if err != nil {
		return errors.Join(err, r.Close(), w.Close())
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		return errors.Join(err, syscall.Close(saved), r.Close(), w.Close())
	}

	c := &capture{saved: saved, r: r, w: w, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		Forward(r, logger)
	}()
	active = c
	return nil
}

// Stop puts the original stderr back and waits for the captured output to
// be logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	c := active
	if c == nil {
		return
	}
	active = nil

	_ = syscall.Dup2(c.saved, int(os.Stderr.Fd()))
	_ = syscall.Close(c.saved)
	_ = c.w.Close()
	<-c.done
	_ = c.r.Close()
}
