package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		expected Command
	}{
		{
			name:     "blank",
			line:     "",
			expected: Command{},
		},
		{
			name:     "whitespace only",
			line:     "   \t  ",
			expected: Command{},
		},
		{
			name:     "comment",
			line:     "# this is a comment",
			expected: Command{},
		},
		{
			name:     "comment without space",
			line:     "#comment",
			expected: Command{},
		},
		{
			name:     "simple",
			line:     "ls",
			expected: Command{Args: []string{"ls"}},
		},
		{
			name:     "arguments",
			line:     "ls -la /tmp",
			expected: Command{Args: []string{"ls", "-la", "/tmp"}},
		},
		{
			name:     "input redirect",
			line:     "wc < junk",
			expected: Command{Args: []string{"wc"}, InputFile: "junk"},
		},
		{
			name:     "output redirect",
			line:     "ls > junk",
			expected: Command{Args: []string{"ls"}, OutputFile: "junk"},
		},
		{
			name:     "both redirects",
			line:     "wc < in.txt > out.txt",
			expected: Command{Args: []string{"wc"}, InputFile: "in.txt", OutputFile: "out.txt"},
		},
		{
			name:     "background",
			line:     "sleep 5 &",
			expected: Command{Args: []string{"sleep", "5"}, Background: true},
		},
		{
			name:     "background with redirects",
			line:     "sort < data > result &",
			expected: Command{Args: []string{"sort"}, InputFile: "data", OutputFile: "result", Background: true},
		},
		{
			name:     "mid-line ampersand is literal",
			line:     "echo a & b",
			expected: Command{Args: []string{"echo", "a", "&", "b"}},
		},
		{
			name:     "pid expansion in arguments",
			line:     "echo $$",
			expected: Command{Args: []string{"echo", "742"}},
		},
		{
			name:     "pid expansion in redirect target",
			line:     "ls > out_$$.txt",
			expected: Command{Args: []string{"ls"}, OutputFile: "out_742.txt"},
		},
		{
			name:     "dangling input operator",
			line:     "cat <",
			expected: Command{Args: []string{"cat"}},
		},
		{
			name:     "dangling output operator",
			line:     "ls >",
			expected: Command{Args: []string{"ls"}},
		},
		{
			name:     "lone ampersand",
			line:     "&",
			expected: Command{Background: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, &tc.expected, ParseLine(tc.line, 742))
		})
	}
}

func TestCommandEmpty(t *testing.T) {
	assert.True(t, ParseLine("", 1).Empty())
	assert.True(t, ParseLine("# note", 1).Empty())
	assert.False(t, ParseLine("ls", 1).Empty())

	assert.Equal(t, "", ParseLine("", 1).Name())
	assert.Equal(t, "ls", ParseLine("ls -l", 1).Name())
}
