package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonLinesLogRecorder(t *testing.T) {
	var buf bytes.Buffer
	log := NewJsonLinesLogRecorder(&buf)
	log.now = func() time.Time { return time.UnixMicro(1234567890) }

	session := log.NewSession()
	require.NoError(t, session.Record(&SessionStart{ShellPID: 42}))
	require.NoError(t, session.Record(&RunCommand{Command: "ls", Background: true}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, int64(1234567890), first.TimestampMicros)
	assert.Equal(t, session.SessionID(), first.SessionID)
	require.NotNil(t, first.SessionStart)
	assert.Equal(t, 42, first.SessionStart.ShellPID)

	var second LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.NotNil(t, second.RunCommand)
	assert.Equal(t, "ls", second.RunCommand.Command)
	assert.True(t, second.RunCommand.Background)
}

func TestNewSessionIDsUnique(t *testing.T) {
	log := NewNopLogRecorder()
	a := log.NewSession()
	b := log.NewSession()

	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestLogEntryLogType(t *testing.T) {
	le := &LogEntry{ModeChange: &ModeChange{ForegroundOnly: true}}
	event, ok := le.LogType().(*ModeChange)
	require.True(t, ok)
	assert.True(t, event.ForegroundOnly)

	assert.Nil(t, (&LogEntry{}).LogType())
}

func TestReadJSONLinesLog(t *testing.T) {
	var buf bytes.Buffer
	log := NewJsonLinesLogRecorder(&buf)
	session := log.NewSession()

	require.NoError(t, session.Record(&SessionStart{ShellPID: 7}))
	require.NoError(t, session.Record(&RunCommand{Command: "ls"}))
	require.NoError(t, session.Record(&RunCommand{Command: "status", Builtin: true}))
	require.NoError(t, session.Record(&UnknownCommand{Command: "nope"}))
	require.NoError(t, session.Record(&RedirectError{Command: "wc", Error: "cannot open junk for input"}))
	require.NoError(t, session.Record(&ProcessExit{PID: 100, ExitStatus: 1}))
	require.NoError(t, session.Record(&ProcessExit{PID: 101, Signaled: true, Signal: 15, Background: true}))
	require.NoError(t, session.Record(&JobStart{PID: 101, Command: "sleep"}))
	require.NoError(t, session.Record(&ModeChange{ForegroundOnly: true}))
	require.NoError(t, session.Record(&SessionEnd{}))

	report := NewReport()
	require.NoError(t, ReadJSONLinesLog(&buf, report.Update))

	assert.Equal(t, 10, report.LogEntries)
	assert.Equal(t, 1, report.Sessions)
	assert.Equal(t, 1, report.Jobs.Started)
	assert.Equal(t, 1, report.ModeChanges)
	assert.Equal(t, 1, report.ProcessExit.BackgroundExits)

	out, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"ls":1`)
	assert.Contains(t, string(out), `"status":1`)
	assert.Contains(t, string(out), `"15":1`)
}
