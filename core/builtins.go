package core

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// AllBuiltins holds all registered shell builtins, keyed by exact name.
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin runs inside the shell process instead of a child.
type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// terminate is swappable for tests.
var terminate = func(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}

// Exit terminates the tracked background children and quits the shell.
// Draining the table first keeps the reapers from announcing them on
// the way down.
func Exit(s *Shell, args []string) int {
	for _, pid := range s.Jobs.Drain() {
		_ = terminate(pid)
	}
	s.Quit = true
	return 0
}

// Cd is the cd shell builtin. Without an argument it changes to the
// home directory.
func Cd(s *Shell, args []string) int {
	switch len(args) {
	case 1:
		args = append(args, os.Getenv(EnvHome))
		fallthrough
	case 2:
		if err := os.Chdir(args[1]); err != nil {
			fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
			return 1
		}
	default:
		fmt.Fprintf(s.stderr, "%s: too many arguments\n", args[0])
		return 1
	}
	return 0
}

// ReportStatus prints how the last foreground command ended. Builtins
// themselves never change it.
func ReportStatus(s *Shell, args []string) int {
	fmt.Fprintln(s.stdout, s.Status.Last())
	return 0
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["status"] = ShellBuiltinFunc(ReportStatus)
}
