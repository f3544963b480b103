package worker

import (
	"context"
	"encoding/json"
	"time"

	"timebook/internal/metrics"
	"timebook/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Task types for time-entry replication.
const (
	TaskCreate = "create"
	TaskUpdate = "update"
	TaskDelete = "delete"
)

// ForwardClient applies one mutation to the downstream booking service.
type ForwardClient interface {
	CreateEntry(ctx context.Context, entry *models.TimeEntry) error
	UpdateEntry(ctx context.Context, entry *models.TimeEntry) error
	DeleteEntry(ctx context.Context, id int) error
}

// Forwarder is the outbox for best-effort replication of time-entry
// mutations. Tasks are buffered in redis when available, otherwise in an
// in-memory channel. Each task is attempted exactly once: a failed forward
// is logged and counted, never retried, and the local mutation stands.
type Forwarder struct {
	client       ForwardClient
	redis        *redis.Client
	queue        chan models.ForwardTask
	queueKey     string
	pollInterval time.Duration
	callTimeout  time.Duration
	logger       zerolog.Logger
}

func NewForwarder(client ForwardClient, redisClient *redis.Client, logger *zerolog.Logger) *Forwarder {
	return &Forwarder{
		client:       client,
		redis:        redisClient,
		queue:        make(chan models.ForwardTask, 128),
		queueKey:     "forward:queue",
		pollInterval: time.Second,
		callTimeout:  5 * time.Second,
		logger:       logger.With().Str("component", "forwarder").Logger(),
	}
}

// Enqueue schedules a task without ever blocking the caller. Redis is tried
// first so tasks survive until the consumer picks them up; when redis is
// absent or failing, the in-memory channel is used, and a full channel drops
// the task with a log line.
func (f *Forwarder) Enqueue(task models.ForwardTask) {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	if f.redis != nil {
		if err := f.pushRedis(task); err != nil {
			f.logger.Warn().Err(err).Msg("redis push failed, falling back to memory queue")
		} else {
			return
		}
	}

	select {
	case f.queue <- task:
	default:
		f.logger.Warn().
			Str("task_type", task.TaskType).
			Int("entry_id", task.EntryID).
			Msg("forward queue full, task dropped")
		metrics.IncForwardDropped()
	}
}

// Start consumes tasks until ctx is canceled. Intended to run as a single
// goroutine so forwards happen one at a time, in order.
func (f *Forwarder) Start(ctx context.Context) {
	f.logger.Info().Msg("forwarder started")
	defer f.logger.Info().Msg("forwarder stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-f.queue:
			f.process(ctx, task)
			continue
		default:
		}

		if task, ok := f.popRedis(ctx); ok {
			f.process(ctx, task)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case task := <-f.queue:
			f.process(ctx, task)
		case <-time.After(f.pollInterval):
		}
	}
}

func (f *Forwarder) process(ctx context.Context, task models.ForwardTask) {
	callCtx, cancel := context.WithTimeout(ctx, f.callTimeout)
	defer cancel()

	var err error
	switch task.TaskType {
	case TaskCreate:
		err = f.client.CreateEntry(callCtx, task.Entry)
	case TaskUpdate:
		err = f.client.UpdateEntry(callCtx, task.Entry)
	case TaskDelete:
		err = f.client.DeleteEntry(callCtx, task.EntryID)
	default:
		f.logger.Error().Str("task_type", task.TaskType).Msg("unknown forward task type")
		return
	}

	if err != nil {
		f.logger.Warn().Err(err).
			Str("task_type", task.TaskType).
			Int("entry_id", task.EntryID).
			Msg("forward failed, task dropped")
		metrics.IncForwardFailure(task.TaskType)
		return
	}

	f.logger.Debug().
		Str("task_type", task.TaskType).
		Int("entry_id", task.EntryID).
		Msg("forwarded")
}

func (f *Forwarder) pushRedis(task models.ForwardTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return f.redis.LPush(ctx, f.queueKey, payload).Err()
}

func (f *Forwarder) popRedis(ctx context.Context) (models.ForwardTask, bool) {
	if f.redis == nil {
		return models.ForwardTask{}, false
	}

	raw, err := f.redis.RPop(ctx, f.queueKey).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			f.logger.Warn().Err(err).Msg("redis pop failed")
		}
		return models.ForwardTask{}, false
	}

	var task models.ForwardTask
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		f.logger.Error().Err(err).Msg("malformed forward task dropped")
		return models.ForwardTask{}, false
	}
	return task, true
}
