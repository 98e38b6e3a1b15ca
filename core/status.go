package core

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"syscall"
)

// Exit codes reported when the shell itself fails a spawn.
const (
	// ExitCannotExec is reported when the program can't be found or started.
	ExitCannotExec = 1
	// ExitRedirect is reported when redirection setup fails.
	ExitRedirect = 2
)

// Status describes how a child process ended. The zero value is the
// default success reported before any foreground command has run.
type Status struct {
	Code     int
	Signaled bool
	Signal   int
}

// String renders the status in the form the status builtin prints.
func (s Status) String() string {
	if s.Signaled {
		return fmt.Sprintf("Terminated by signal %d", s.Signal)
	}
	return fmt.Sprintf("Exit status %d", s.Code)
}

// ExitCode converts the status to a shell exit code, mapping signal
// deaths to 128+N.
func (s Status) ExitCode() int {
	if s.Signaled {
		return 128 + s.Signal
	}
	return s.Code
}

// WaitStatus converts the error from an exec.Cmd Wait or Run into a
// Status. A nil error is a clean zero exit; an error that isn't an
// ExitError means the command never ran at all.
func WaitStatus(err error) Status {
	if err == nil {
		return Status{}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return Status{Signaled: true, Signal: int(ws.Signal())}
		}
		return Status{Code: exitErr.ExitCode()}
	}
	return Status{Code: ExitCannotExec}
}

// Background job announcements written to the terminal by the
// dispatcher and the reapers.
func backgroundStarted(pid int) string {
	return fmt.Sprintf("Background child PID %d is starting", pid)
}

func backgroundDone(pid int, s Status) string {
	if s.Signaled {
		return fmt.Sprintf("Background child PID %d is terminated by signal %d", pid, s.Signal)
	}
	return fmt.Sprintf("Background child PID %d is done with exit status %d", pid, s.Code)
}

// StatusTracker holds the most recent foreground termination status.
// Background completions never touch it.
type StatusTracker struct {
	mu   sync.Mutex
	last Status
}

// Set records the termination status of a foreground command.
func (t *StatusTracker) Set(s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = s
}

// Last returns the most recently recorded status.
func (t *StatusTracker) Last() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
