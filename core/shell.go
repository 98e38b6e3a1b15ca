package core

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"github.com/vienton/cs344-smallsh/core/config"
	"github.com/vienton/cs344-smallsh/core/logger"
)

const (
	// EnvHome names the variable cd consults when called without an
	// argument.
	EnvHome = "HOME"

	DefaultPrompt = ": "
)

var promptColor = color.New(color.FgCyan, color.Bold)

// Shell is an interactive command interpreter with background job
// control. One Shell serves one terminal session.
type Shell struct {
	Readline *readline.Instance
	Jobs     *JobTable
	Status   *StatusTracker

	// Quit is set to true to quit the shell.
	Quit bool

	cfg      *config.Configuration
	signals  *SignalHandler
	redirect *Redirector
	log      *logger.SessionLogger
	pid      int

	// stdin must be the real terminal file so foreground children can
	// read it directly rather than through a relay goroutine.
	stdin  *os.File
	stdout io.Writer
	stderr io.Writer
}

// NewShell builds a shell attached to the process's standard streams.
func NewShell(cfg *config.Configuration, events *logger.Logger) (*Shell, error) {
	rlCfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(os.Stdin),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		// At the prompt the terminal is raw, so Ctrl+Z arrives as a
		// byte instead of a signal. Re-route it to the signal handler
		// and drop it rather than letting readline suspend the shell.
		FuncFilterInputRune: func(r rune) (rune, bool) {
			if r == readline.CharCtrlZ {
				_ = unix.Kill(os.Getpid(), unix.SIGTSTP)
				return r, false
			}
			return r, true
		},
	}
	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, err
	}

	sessionLog := events.NewSession()
	shell := &Shell{
		Readline: rl,
		Jobs:     NewJobTable(cfg.MaxBackgroundJobs),
		Status:   &StatusTracker{},
		cfg:      cfg,
		redirect: NewRedirector(afero.NewOsFs()),
		log:      sessionLog,
		pid:      os.Getpid(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	shell.signals = NewSignalHandler(os.Stdout, sessionLog)
	return shell, nil
}

// prompt renders the configured prompt. Color degrades to plain text
// off-terminal.
func (s *Shell) prompt() string {
	prompt := DefaultPrompt
	if s.cfg != nil && s.cfg.Prompt != "" {
		prompt = s.cfg.Prompt
	}
	if s.cfg != nil && s.cfg.ColorPrompt {
		return promptColor.Sprint(prompt)
	}
	return prompt
}

// Run executes the read/eval loop until exit or end of input and
// returns the shell's own exit code.
func (s *Shell) Run() int {
	s.signals.Start()
	defer s.signals.Stop()

	s.log.Record(&logger.SessionStart{ShellPID: s.pid})
	defer s.log.Record(&logger.SessionEnd{})

	if s.cfg != nil && s.cfg.Motd != "" {
		fmt.Fprintln(s.stdout, s.cfg.Motd)
	}

	for !s.Quit {
		s.Readline.SetPrompt(s.prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			// Input closed. Quit the way exit does so background
			// children are cleaned up.
			Exit(s, []string{"exit"})

		case err == readline.ErrInterrupt:
			// Interrupt drops the line; the shell itself survives.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue

		default:
			s.Interpret(line)
		}
	}
	return 0
}

// RunCommandLine runs a single command line non-interactively and
// returns its exit code, mapping signal deaths to 128+N.
func (s *Shell) RunCommandLine(line string) int {
	s.signals.Start()
	defer s.signals.Stop()

	s.log.Record(&logger.SessionStart{ShellPID: s.pid})
	s.Interpret(line)
	s.log.Record(&logger.SessionEnd{})
	return s.Status.Last().ExitCode()
}

// Interpret parses and dispatches one input line. Blank lines and
// comments do nothing at all: no child, no status change.
func (s *Shell) Interpret(line string) {
	cmd := ParseLine(line, s.pid)
	if cmd.Empty() {
		return
	}

	if builtin, ok := AllBuiltins[cmd.Name()]; ok {
		s.log.Record(&logger.RunCommand{Command: cmd.Name(), Builtin: true})
		builtin.Main(s, cmd.Args)
		return
	}

	s.log.Record(&logger.RunCommand{
		Command:    cmd.Name(),
		InputFile:  cmd.InputFile,
		OutputFile: cmd.OutputFile,
		Background: cmd.Background,
	})
	s.spawn(cmd)
}

func (s *Shell) Close() error {
	return s.Readline.Close()
}
