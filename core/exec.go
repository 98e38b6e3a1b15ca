package core

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/vienton/cs344-smallsh/core/logger"
)

// spawn launches a child process for a non-builtin command.
//
// The child is placed in its own process group so the terminal's
// keyboard signals never reach it directly; the shell forwards
// interrupts to the foreground child itself.
func (s *Shell) spawn(cmd *Command) {
	background := cmd.Background && !s.signals.ForegroundOnly()

	stdio, err := s.redirect.Open(cmd, background)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		s.Status.Set(Status{Code: ExitRedirect})
		s.log.Record(&logger.RedirectError{
			Command: cmd.Name(),
			Error:   err.Error(),
		})
		return
	}

	execCmd := exec.Command(cmd.Name(), cmd.Args[1:]...)
	if s.stdin != nil {
		execCmd.Stdin = s.stdin
	}
	execCmd.Stdout = s.stdout
	execCmd.Stderr = s.stderr
	if stdio.In != nil {
		execCmd.Stdin = stdio.In
	}
	if stdio.Out != nil {
		execCmd.Stdout = stdio.Out
	}
	execCmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := execCmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			fmt.Fprintf(s.stderr, "%s: command not found\n", cmd.Name())
		} else {
			fmt.Fprintf(s.stderr, "%s: %v\n", cmd.Name(), err)
		}
		s.Status.Set(Status{Code: ExitCannotExec})
		s.log.Record(&logger.UnknownCommand{Command: cmd.Name()})
		stdio.Close()
		return
	}

	if background {
		s.runBackground(execCmd, stdio, cmd)
	} else {
		s.runForeground(execCmd, stdio)
	}
}

// runForeground blocks until the child exits and records how it ended.
func (s *Shell) runForeground(execCmd *exec.Cmd, stdio *Stdio) {
	pid := execCmd.Process.Pid
	s.signals.SetForeground(pid)
	err := execCmd.Wait()
	s.signals.ClearForeground()
	stdio.Close()

	status := WaitStatus(err)
	s.Status.Set(status)
	if status.Signaled {
		fmt.Fprintln(s.stdout, status)
	}
	s.log.Record(&logger.ProcessExit{
		PID:        pid,
		ExitStatus: status.Code,
		Signaled:   status.Signaled,
		Signal:     status.Signal,
	})
}

// runBackground announces the child and hands it to a reaper goroutine.
// A child that no longer fits in the job table still runs, but its exit
// is never announced.
func (s *Shell) runBackground(execCmd *exec.Cmd, stdio *Stdio, cmd *Command) {
	pid := execCmd.Process.Pid
	if s.Jobs.Add(&Job{PID: pid, Name: cmd.Name(), Started: time.Now()}) {
		s.log.Record(&logger.JobStart{PID: pid, Command: cmd.Name()})
	} else {
		s.log.Record(&logger.JobOverflow{PID: pid, Command: cmd.Name()})
	}
	fmt.Fprintln(s.stdout, backgroundStarted(pid))
	go s.reap(execCmd, stdio, pid)
}

// reap waits on one background child. The announcement is gated on the
// job table so a child removed by exit is reaped silently.
func (s *Shell) reap(execCmd *exec.Cmd, stdio *Stdio, pid int) {
	err := execCmd.Wait()
	stdio.Close()

	status := WaitStatus(err)
	s.log.Record(&logger.ProcessExit{
		PID:        pid,
		ExitStatus: status.Code,
		Signaled:   status.Signaled,
		Signal:     status.Signal,
		Background: true,
	})
	if !s.Jobs.Remove(pid) {
		return
	}
	fmt.Fprintln(s.stdout, backgroundDone(pid, status))
}
