package models

// Time entry statuses. "submitted" is never assigned locally; the external
// booking system sets it once an entry has been transferred.
const (
	EntryStatusActive    = "active"
	EntryStatusCompleted = "completed"
	EntryStatusSubmitted = "submitted"
)

// TimeEntry is a local record of time spent against a work order. EndTime is
// empty while the entry is still running.
type TimeEntry struct {
	ID              int     `json:"id"`
	WorkOrderNumber string  `json:"workOrderNumber"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime,omitempty"`
	Date            string  `json:"date"`
	Duration        float64 `json:"duration"`
	Status          string  `json:"status"`
}
