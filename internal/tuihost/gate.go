package tuihost

import (
	"io"
	"sync/atomic"

	"github.com/llehouerou/dexlog/internal/formbridge"
)

// Gate switches the terminal input sources a file dialog suspends. It is
// safe for concurrent use.
type Gate struct {
	pointerOff atomic.Int32
	audioOff   atomic.Int32
}

// PointerEnabled reports whether mouse clicks reach the overlay.
func (g *Gate) PointerEnabled() bool {
	return g.pointerOff.Load() == 0
}

// AudioEnabled reports whether the terminal bell may ring.
func (g *Gate) AudioEnabled() bool {
	return g.audioOff.Load() == 0
}

// Pointer returns a suspender for mouse input.
func (g *Gate) Pointer() formbridge.Suspender {
	return counter(&g.pointerOff)
}

// Audio returns a suspender for the terminal bell.
func (g *Gate) Audio() formbridge.Suspender {
	return counter(&g.audioOff)
}

// Suspenders returns every input source of the gate.
func (g *Gate) Suspenders() []formbridge.Suspender {
	return []formbridge.Suspender{g.Pointer(), g.Audio()}
}

// Bell rings the terminal bell on w unless audio is suspended.
func (g *Gate) Bell(w io.Writer) {
	if g.AudioEnabled() {
		_, _ = io.WriteString(w, "\a")
	}
}

func counter(n *atomic.Int32) formbridge.Suspender {
	return formbridge.SuspendFunc(func() func() {
		n.Add(1)
		var once atomic.Bool
		return func() {
			if once.CompareAndSwap(false, true) {
				n.Add(-1)
			}
		}
	})
}
