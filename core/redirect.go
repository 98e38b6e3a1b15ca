package core

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// outputFileMode matches the permissions redirect targets are created
// with.
const outputFileMode = 0644

// Redirector opens the files a child's stdin and stdout are bound to.
// The filesystem is injected so tests can run against an in-memory one.
type Redirector struct {
	fs afero.Fs
	// nullDevice is substituted for missing redirects on background
	// commands.
	nullDevice string
}

// NewRedirector creates a Redirector over fs.
func NewRedirector(fs afero.Fs) *Redirector {
	return &Redirector{fs: fs, nullDevice: os.DevNull}
}

// Stdio holds the opened redirect targets for one command. A nil field
// means the shell's own stream is inherited.
type Stdio struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// Close releases both files.
func (s *Stdio) Close() {
	if s.In != nil {
		s.In.Close()
	}
	if s.Out != nil {
		s.Out.Close()
	}
}

// Open resolves cmd's redirections. Background commands with no
// explicit path get the null device; an explicit path always wins.
// Output targets are created or truncated, inputs open read-only.
func (r *Redirector) Open(cmd *Command, background bool) (*Stdio, error) {
	stdio := &Stdio{}

	inPath := cmd.InputFile
	if inPath == "" && background {
		inPath = r.nullDevice
	}
	if inPath != "" {
		in, err := r.fs.Open(inPath)
		if err != nil {
			return nil, fmt.Errorf("cannot open %s for input: %w", inPath, err)
		}
		stdio.In = in
	}

	outPath := cmd.OutputFile
	if outPath == "" && background {
		outPath = r.nullDevice
	}
	if outPath != "" {
		out, err := r.fs.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputFileMode)
		if err != nil {
			stdio.Close()
			return nil, fmt.Errorf("cannot open %s for output: %w", outPath, err)
		}
		stdio.Out = out
	}

	return stdio, nil
}
