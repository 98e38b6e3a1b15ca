package core

import (
	"sync"
	"time"
)

// DefaultJobLimit caps how many background children are tracked at once.
const DefaultJobLimit = 100

// Job is one tracked background child.
type Job struct {
	PID     int
	Name    string
	Started time.Time
}

// JobTable tracks running background children by PID. It is bounded:
// once full, new children run untracked and are never announced. Safe
// for concurrent use by the dispatcher and the reaper goroutines.
type JobTable struct {
	mu    sync.Mutex
	limit int
	jobs  map[int]*Job
}

// NewJobTable creates a table holding at most limit jobs. A limit of
// zero or less falls back to DefaultJobLimit.
func NewJobTable(limit int) *JobTable {
	if limit <= 0 {
		limit = DefaultJobLimit
	}
	return &JobTable{
		limit: limit,
		jobs:  make(map[int]*Job),
	}
}

// Add tracks a job, reporting false when the table is full.
func (t *JobTable) Add(job *Job) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.jobs) >= t.limit {
		return false
	}
	t.jobs[job.PID] = job
	return true
}

// Remove clears a PID, reporting whether it was tracked. Each PID
// clears at most once so completions are announced exactly once.
func (t *JobTable) Remove(pid int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.jobs[pid]; !ok {
		return false
	}
	delete(t.jobs, pid)
	return true
}

// Drain removes every job and returns their PIDs. Reapers that fire
// afterwards see their PID untracked and stay quiet.
func (t *JobTable) Drain() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, 0, len(t.jobs))
	for pid := range t.jobs {
		out = append(out, pid)
	}
	t.jobs = make(map[int]*Job)
	return out
}

// Len reports how many jobs are tracked.
func (t *JobTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

// PIDs returns a snapshot of the tracked PIDs.
func (t *JobTable) PIDs() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, 0, len(t.jobs))
	for pid := range t.jobs {
		out = append(out, pid)
	}
	return out
}
