package models

import "time"

// ForwardTask represents one queued best-effort replication of a time-entry
// mutation to the downstream booking service. Tasks are processed once and
// dropped on failure; there is no retry and no rollback of the local change.
type ForwardTask struct {
	TaskType  string     `json:"task_type"`
	EntryID   int        `json:"entry_id"`
	Entry     *TimeEntry `json:"entry,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
