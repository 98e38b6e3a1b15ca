package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures shell interaction events.
type Logger struct {
	Record LogRecorder

	// now is swappable so tests get stable timestamps.
	now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
		now: time.Now,
	}
}

// NewNopLogRecorder creates a Logger that discards every event.
func NewNopLogRecorder() *Logger {
	return &Logger{
		Record: func(le *LogEntry) error { return nil },
		now:    time.Now,
	}
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{}
	le.TimestampMicros = l.now().UnixMicro()
	le.SessionID = sessionID
	event.attach(le)

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the identifier stamped on this session's events.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}
