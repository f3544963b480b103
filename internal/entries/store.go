package entries

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"timebook/internal/models"
	"timebook/internal/worker"

	"github.com/rs/zerolog"
)

var (
	// ErrNotFound reports an unknown time-entry id.
	ErrNotFound = errors.New("time entry not found")

	// ErrMissingField reports a required field absent from a create/update.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidTime reports a start or end time not in HH:mm form.
	ErrInvalidTime = errors.New("invalid time format")
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// Forwarder receives mutation tasks for best-effort replication to the
// booking service. Enqueue must never block the caller.
type Forwarder interface {
	Enqueue(task models.ForwardTask)
}

// CreateInput carries the caller-supplied fields of a new entry. Date is
// always the current day; the store fills it in.
type CreateInput struct {
	WorkOrderNumber string `json:"workOrderNumber"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime,omitempty"`
}

// UpdateInput is a full replace of an entry's mutable fields.
type UpdateInput struct {
	WorkOrderNumber string `json:"workOrderNumber"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime,omitempty"`
	Date            string `json:"date"`
}

// Filter narrows List results. Both conditions are optional and conjunctive.
type Filter struct {
	Date      string
	WorkOrder string
}

// Store owns the in-memory time-entry collection and its id counter. All
// access goes through one mutex, so mutations are serialized; there is no
// persistence across restarts.
type Store struct {
	mu        sync.Mutex
	entries   []models.TimeEntry
	nextID    int
	forwarder Forwarder
	logger    zerolog.Logger

	// now supplies the default entry date; swapped in tests.
	now func() time.Time
}

// New returns a store seeded with the three example entries the front end
// expects on a fresh instance. Pass a nil forwarder to disable replication.
func New(forwarder Forwarder, logger *zerolog.Logger) *Store {
	return &Store{
		entries: []models.TimeEntry{
			{ID: 1, WorkOrderNumber: "WO-12345", StartTime: "09:00", EndTime: "12:00",
				Duration: 3, Date: "2025-07-04", Status: models.EntryStatusCompleted},
			{ID: 2, WorkOrderNumber: "WO-12346", StartTime: "13:00", EndTime: "17:00",
				Duration: 4, Date: "2025-07-04", Status: models.EntryStatusCompleted},
			{ID: 3, WorkOrderNumber: "WO-12347", StartTime: "08:30",
				Date: "2025-07-04", Status: models.EntryStatusActive},
		},
		nextID:    4,
		forwarder: forwarder,
		logger:    logger.With().Str("component", "entries").Logger(),
		now:       time.Now,
	}
}

// List returns entries in insertion order, narrowed by an exact date match
// and a case-insensitive substring match on the work order number.
func (s *Store) List(ctx context.Context, filter Filter) []models.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(filter.WorkOrder)
	out := make([]models.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.Date != "" && e.Date != filter.Date {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.WorkOrderNumber), needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Get returns the entry with the given id.
func (s *Store) Get(ctx context.Context, id int) (models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.TimeEntry{}, ErrNotFound
}

// Create appends a new entry with the next sequential id. The entry date is
// the current calendar day; duration and status are derived from the times.
func (s *Store) Create(ctx context.Context, input CreateInput) (models.TimeEntry, error) {
	if err := requireFields(map[string]string{
		"workOrderNumber": input.WorkOrderNumber,
		"startTime":       input.StartTime,
	}); err != nil {
		return models.TimeEntry{}, err
	}

	duration, err := clockDuration(input.StartTime, input.EndTime)
	if err != nil {
		return models.TimeEntry{}, err
	}

	s.mu.Lock()
	entry := models.TimeEntry{
		ID:              s.nextID,
		WorkOrderNumber: input.WorkOrderNumber,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Date:            s.now().Format(dateLayout),
		Duration:        duration,
		Status:          statusFor(input.EndTime),
	}
	s.nextID++
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	s.forward(models.ForwardTask{TaskType: worker.TaskCreate, EntryID: entry.ID, Entry: &entry})
	return entry, nil
}

// Update replaces every mutable field of an existing entry and recomputes
// duration and status. Unknown ids leave the collection unchanged.
func (s *Store) Update(ctx context.Context, id int, input UpdateInput) (models.TimeEntry, error) {
	if err := requireFields(map[string]string{
		"workOrderNumber": input.WorkOrderNumber,
		"startTime":       input.StartTime,
		"date":            input.Date,
	}); err != nil {
		return models.TimeEntry{}, err
	}

	duration, err := clockDuration(input.StartTime, input.EndTime)
	if err != nil {
		return models.TimeEntry{}, err
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.TimeEntry{}, ErrNotFound
	}

	entry := s.entries[idx]
	entry.WorkOrderNumber = input.WorkOrderNumber
	entry.StartTime = input.StartTime
	entry.EndTime = input.EndTime
	entry.Date = input.Date
	entry.Duration = duration
	entry.Status = statusFor(input.EndTime)
	s.entries[idx] = entry
	s.mu.Unlock()

	s.forward(models.ForwardTask{TaskType: worker.TaskUpdate, EntryID: id, Entry: &entry})
	return entry, nil
}

// Delete removes an entry and returns it.
func (s *Store) Delete(ctx context.Context, id int) (models.TimeEntry, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.TimeEntry{}, ErrNotFound
	}

	entry := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.mu.Unlock()

	s.forward(models.ForwardTask{TaskType: worker.TaskDelete, EntryID: id})
	return entry, nil
}

// indexOf is called with s.mu held.
func (s *Store) indexOf(id int) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) forward(task models.ForwardTask) {
	if s.forwarder == nil {
		return
	}
	task.CreatedAt = time.Now()
	s.forwarder.Enqueue(task)
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
}

func statusFor(endTime string) string {
	if endTime == "" {
		return models.EntryStatusActive
	}
	return models.EntryStatusCompleted
}

// clockDuration treats start and end as same-day wall-clock times and
// returns the difference in hours, rounded to two decimals. An absent end
// time means the entry is still running and has zero duration.
func clockDuration(startTime, endTime string) (float64, error) {
	start, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return 0, fmt.Errorf("%w: startTime %q", ErrInvalidTime, startTime)
	}
	if endTime == "" {
		return 0, nil
	}
	end, err := time.Parse(clockLayout, endTime)
	if err != nil {
		return 0, fmt.Errorf("%w: endTime %q", ErrInvalidTime, endTime)
	}

	hours := end.Sub(start).Hours()
	return math.Round(hours*100) / 100, nil
}
