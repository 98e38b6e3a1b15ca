package logger

// LogEntry is one recorded shell event. Exactly one of the event
// fields is set per entry.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart   *SessionStart   `json:"session_start,omitempty"`
	RunCommand     *RunCommand     `json:"run_command,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
	RedirectError  *RedirectError  `json:"redirect_error,omitempty"`
	ProcessExit    *ProcessExit    `json:"process_exit,omitempty"`
	JobStart       *JobStart       `json:"job_start,omitempty"`
	JobOverflow    *JobOverflow    `json:"job_overflow,omitempty"`
	ModeChange     *ModeChange     `json:"mode_change,omitempty"`
	SessionEnd     *SessionEnd     `json:"session_end,omitempty"`
}

// LogType returns whichever event is attached to the entry, or nil.
func (le *LogEntry) LogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.RedirectError != nil:
		return le.RedirectError
	case le.ProcessExit != nil:
		return le.ProcessExit
	case le.JobStart != nil:
		return le.JobStart
	case le.JobOverflow != nil:
		return le.JobOverflow
	case le.ModeChange != nil:
		return le.ModeChange
	case le.SessionEnd != nil:
		return le.SessionEnd
	}
	return nil
}

// LogType is implemented by every event that can attach to a LogEntry.
type LogType interface {
	attach(le *LogEntry)
}

// SessionStart marks a shell session beginning.
type SessionStart struct {
	ShellPID int `json:"shell_pid,omitempty"`
}

func (e *SessionStart) attach(le *LogEntry) { le.SessionStart = e }

// RunCommand records a dispatched command line.
type RunCommand struct {
	Command    string `json:"command"`
	InputFile  string `json:"input_file,omitempty"`
	OutputFile string `json:"output_file,omitempty"`
	Background bool   `json:"background,omitempty"`
	Builtin    bool   `json:"builtin,omitempty"`
}

func (e *RunCommand) attach(le *LogEntry) { le.RunCommand = e }

// UnknownCommand records a command that could not be started.
type UnknownCommand struct {
	Command string `json:"command"`
}

func (e *UnknownCommand) attach(le *LogEntry) { le.UnknownCommand = e }

// RedirectError records a redirection target that failed to open.
type RedirectError struct {
	Command string `json:"command"`
	Error   string `json:"error"`
}

func (e *RedirectError) attach(le *LogEntry) { le.RedirectError = e }

// ProcessExit records how a child ended.
type ProcessExit struct {
	PID        int  `json:"pid"`
	ExitStatus int  `json:"exit_status"`
	Signaled   bool `json:"signaled,omitempty"`
	Signal     int  `json:"signal,omitempty"`
	Background bool `json:"background,omitempty"`
}

func (e *ProcessExit) attach(le *LogEntry) { le.ProcessExit = e }

// JobStart records a background child entering the job table.
type JobStart struct {
	PID     int    `json:"pid"`
	Command string `json:"command"`
}

func (e *JobStart) attach(le *LogEntry) { le.JobStart = e }

// JobOverflow records a background child the full job table couldn't
// track.
type JobOverflow struct {
	PID     int    `json:"pid"`
	Command string `json:"command"`
}

func (e *JobOverflow) attach(le *LogEntry) { le.JobOverflow = e }

// ModeChange records a foreground-only mode toggle.
type ModeChange struct {
	ForegroundOnly bool `json:"foreground_only"`
}

func (e *ModeChange) attach(le *LogEntry) { le.ModeChange = e }

// SessionEnd marks a shell session ending.
type SessionEnd struct {
}

func (e *SessionEnd) attach(le *LogEntry) { le.SessionEnd = e }
