package core

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCdBuiltin(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})

	s, _, stderr := newTestShell(t)
	dir := t.TempDir()

	assert.Equal(t, 0, Cd(s, []string{"cd", dir}))
	assert.Empty(t, stderr.String())

	got, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCdBuiltinHome(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})

	home := t.TempDir()
	t.Setenv(EnvHome, home)

	s, _, stderr := newTestShell(t)
	assert.Equal(t, 0, Cd(s, []string{"cd"}))
	assert.Empty(t, stderr.String())

	got, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(home)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCdBuiltinErrors(t *testing.T) {
	s, _, stderr := newTestShell(t)

	assert.Equal(t, 1, Cd(s, []string{"cd", filepath.Join(t.TempDir(), "missing")}))
	assert.Contains(t, stderr.String(), "cd: ")

	stderr.Reset()
	assert.Equal(t, 1, Cd(s, []string{"cd", "a", "b"}))
	assert.Equal(t, "cd: too many arguments\n", stderr.String())
}

func TestExitBuiltin(t *testing.T) {
	s, _, _ := newTestShell(t)
	require.True(t, s.Jobs.Add(&Job{PID: 101, Name: "sleep"}))
	require.True(t, s.Jobs.Add(&Job{PID: 202, Name: "sleep"}))

	var killed []int
	origTerminate := terminate
	terminate = func(pid int) error {
		killed = append(killed, pid)
		return nil
	}
	t.Cleanup(func() { terminate = origTerminate })

	assert.Equal(t, 0, Exit(s, []string{"exit"}))
	assert.True(t, s.Quit)
	assert.Equal(t, 0, s.Jobs.Len())

	sort.Ints(killed)
	assert.Equal(t, []int{101, 202}, killed)
}

func TestReportStatus(t *testing.T) {
	s, stdout, _ := newTestShell(t)

	assert.Equal(t, 0, ReportStatus(s, []string{"status"}))
	assert.Equal(t, "Exit status 0\n", stdout.String())

	stdout.Reset()
	s.Status.Set(Status{Signaled: true, Signal: 11})
	assert.Equal(t, 0, ReportStatus(s, []string{"status"}))
	assert.Equal(t, "Terminated by signal 11\n", stdout.String())
}

func TestBuiltinRegistry(t *testing.T) {
	for _, name := range []string{"exit", "cd", "status"} {
		assert.Contains(t, AllBuiltins, name)
	}
}
