package core

import (
	"io"
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/vienton/cs344-smallsh/core/logger"
)

// Messages written when the stop signal toggles foreground-only mode.
// They fire asynchronously, between or even during prompts, so they go
// out as single unbuffered writes.
const (
	msgEnterForegroundOnly = "Entering foreground-only mode (& is now ignored)\n"
	msgExitForegroundOnly  = "Exiting foreground-only mode\n"
)

// SignalHandler owns the shell's signal dispositions. Interrupts are
// forwarded to the foreground child's process group and never handled
// by the shell itself; the stop signal toggles foreground-only mode.
//
// Children run in their own process group, so terminal signals only
// reach the shell and the forwarding below decides who else sees them:
// foreground children get interrupts, nobody gets the stop signal.
type SignalHandler struct {
	out io.Writer
	log *logger.SessionLogger

	fgOnly atomic.Bool
	fgPID  atomic.Int64

	notify chan os.Signal
	done   chan struct{}
}

// NewSignalHandler creates a handler that writes mode changes to out.
func NewSignalHandler(out io.Writer, log *logger.SessionLogger) *SignalHandler {
	return &SignalHandler{
		out:    out,
		log:    log,
		notify: make(chan os.Signal, 8),
		done:   make(chan struct{}),
	}
}

// Start installs the signal dispositions and begins draining
// notifications. Stop reverses it.
func (h *SignalHandler) Start() {
	signal.Notify(h.notify, unix.SIGINT, unix.SIGTSTP)
	go h.drain()
}

// Stop uninstalls the handler and restores the default dispositions.
func (h *SignalHandler) Stop() {
	signal.Stop(h.notify)
	close(h.done)
}

func (h *SignalHandler) drain() {
	for {
		select {
		case sig := <-h.notify:
			switch sig {
			case unix.SIGINT:
				h.forwardInterrupt()
			case unix.SIGTSTP:
				h.toggleForegroundOnly()
			}
		case <-h.done:
			return
		}
	}
}

// forwardInterrupt delivers an interrupt to the foreground child's
// process group. With no foreground child the signal is dropped: the
// shell ignores interrupts.
func (h *SignalHandler) forwardInterrupt() {
	if pid := h.fgPID.Load(); pid != 0 {
		_ = unix.Kill(-int(pid), unix.SIGINT)
	}
}

// toggleForegroundOnly flips the mode and announces it. Only the drain
// goroutine toggles, so the load and store don't race.
func (h *SignalHandler) toggleForegroundOnly() {
	entering := !h.fgOnly.Load()
	h.fgOnly.Store(entering)

	if entering {
		io.WriteString(h.out, msgEnterForegroundOnly)
	} else {
		io.WriteString(h.out, msgExitForegroundOnly)
	}

	if h.log != nil {
		h.log.Record(&logger.ModeChange{ForegroundOnly: entering})
	}
}

// ForegroundOnly reports whether the background marker is currently
// ignored. The dispatcher reads it before every spawn decision.
func (h *SignalHandler) ForegroundOnly() bool {
	return h.fgOnly.Load()
}

// SetForeground marks pid as the interrupt-forwarding target while a
// foreground child runs.
func (h *SignalHandler) SetForeground(pid int) {
	h.fgPID.Store(int64(pid))
}

// ClearForeground removes the forwarding target.
func (h *SignalHandler) ClearForeground() {
	h.fgPID.Store(0)
}
