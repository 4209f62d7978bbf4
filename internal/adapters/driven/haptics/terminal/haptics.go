// Package terminal provides placement feedback through the terminal
// bell, the closest a console client gets to a haptic pulse.
package terminal

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
)

// Ensure Haptics implements the interface.
var _ driven.Haptics = (*Haptics)(nil)

// bellGap separates repeated bells so terminals render them distinctly.
const bellGap = 60 * time.Millisecond

// Haptics maps feedback levels to terminal bells: strong rings twice,
// medium once, light stays silent.
type Haptics struct {
	mu  sync.Mutex
	out io.Writer
}

// NewHaptics creates a terminal feedback adapter writing to stderr.
func NewHaptics() *Haptics {
	return &Haptics{out: os.Stderr}
}

// SetOutput redirects the bell output.
func (h *Haptics) SetOutput(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out = w
}

// Pulse delivers the feedback. Failures are swallowed; feedback is
// never worth an error.
func (h *Haptics) Pulse(level domain.HapticLevel) {
	rings := 0
	switch level {
	case domain.HapticStrong:
		rings = 2
	case domain.HapticMedium:
		rings = 1
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for i := 0; i < rings; i++ {
		if i > 0 {
			time.Sleep(bellGap)
		}
		_, _ = h.out.Write([]byte("\a"))
	}
}
