package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

func NewReport() *Report {
	return &Report{
		RedirectErrors: NewPathCounter("command", "error"),
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	ProcessExit    ProcessExitReport    `json:"process_exit_report"`
	Jobs           JobReport            `json:"job_report"`
	RedirectErrors *PathCounter         `json:"redirect_errors"`
	ModeChanges    int                  `json:"mode_changes"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.LogType().(type) {
	case *SessionStart:
		r.Sessions++
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *RedirectError:
		r.RedirectErrors.Increment(event.Command, event.Error)
	case *ProcessExit:
		r.ProcessExit.update(event)
	case *JobStart:
		r.Jobs.Started++
	case *JobOverflow:
		r.Jobs.Overflows++
	case *ModeChange:
		r.ModeChanges++
	case *SessionEnd:
		// Ignore
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type RunCommandReport struct {
	// Names of the commands run as child processes.
	CommandNames StrCounter `json:"command_names"`
	// Names of the builtins run in the shell itself.
	BuiltinNames StrCounter `json:"builtin_names"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if rc.Builtin {
		r.BuiltinNames.Increment(rc.Command)
		return
	}
	r.CommandNames.Increment(rc.Command)
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	r.CommandNames.Increment(logEntry.Command)
}

type ProcessExitReport struct {
	ExitStatuses    StrCounter `json:"exit_statuses"`
	FatalSignals    StrCounter `json:"fatal_signals"`
	BackgroundExits int        `json:"background_exits"`
}

func (r *ProcessExitReport) update(pe *ProcessExit) {
	if pe.Signaled {
		r.FatalSignals.Increment(strconv.Itoa(pe.Signal))
	} else {
		r.ExitStatuses.Increment(strconv.Itoa(pe.ExitStatus))
	}
	if pe.Background {
		r.BackgroundExits++
	}
}

type JobReport struct {
	Started   int `json:"started"`
	Overflows int `json:"overflows"`
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
