package core

import (
	"strings"
)

// Token forms recognized by the parser. Quoting and escaping aren't
// supported; tokens are literal whitespace-separated words.
const (
	tokenInput      = "<"
	tokenOutput     = ">"
	tokenBackground = "&"
	commentPrefix   = "#"
)

// Command is a single parsed input line, built once per line and
// discarded after dispatch.
type Command struct {
	// Args holds the program name followed by its arguments.
	Args []string
	// InputFile is the stdin redirection target, empty for none.
	InputFile string
	// OutputFile is the stdout redirection target, empty for none.
	OutputFile string
	// Background reports that the line ended with the background marker.
	Background bool
}

// Empty reports whether the line held no command: blank or a comment.
func (c *Command) Empty() bool {
	return len(c.Args) == 0
}

// Name returns the program name, or "" for an empty command.
func (c *Command) Name() string {
	if c.Empty() {
		return ""
	}
	return c.Args[0]
}

// ParseLine splits line into whitespace-separated tokens and assembles
// a Command. The PID marker is expanded in arguments and in redirect
// targets, never in the operator tokens themselves.
//
// Blank lines and lines whose first token starts with "#" produce an
// empty Command. The background marker only counts as the final token
// of the line; anywhere else it is a literal argument. A redirect
// operator with no following token is dropped.
func ParseLine(line string, pid int) *Command {
	tokens := strings.Fields(line)

	cmd := &Command{}
	if len(tokens) == 0 || strings.HasPrefix(tokens[0], commentPrefix) {
		return cmd
	}

	if tokens[len(tokens)-1] == tokenBackground {
		cmd.Background = true
		tokens = tokens[:len(tokens)-1]
	}

	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i]; tok {
		case tokenInput, tokenOutput:
			if i+1 >= len(tokens) {
				break // dangling operator
			}
			i++
			target := Expand(tokens[i], pid)
			if tok == tokenInput {
				cmd.InputFile = target
			} else {
				cmd.OutputFile = target
			}
		default:
			cmd.Args = append(cmd.Args, Expand(tok, pid))
		}
	}

	return cmd
}
