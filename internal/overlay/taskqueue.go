package overlay

import (
	"time"

	"github.com/rs/zerolog"
)

// Task runs on the UI thread. Returning true asks the queue to run it again
// after a short delay, the convention used to wait for a playback backend to
// become ready without blocking the UI.
type Task func() bool

const (
	defaultRetryDelay = 25 * time.Millisecond
	defaultMaxRetries = 120
)

// TaskQueue hands work to the host's single UI thread. Backend-originated
// notifications must go through here rather than touching widget or playback
// state from a foreign thread.
type TaskQueue struct {
	run        func(func())
	retryDelay time.Duration
	maxRetries int
	logger     zerolog.Logger
}

// QueueOption configures a TaskQueue.
type QueueOption func(*TaskQueue)

// WithRetryDelay sets the delay between reruns of a task that asked to be
// repeated.
func WithRetryDelay(d time.Duration) QueueOption {
	return func(q *TaskQueue) { q.retryDelay = d }
}

// WithMaxRetries bounds how often a task may ask to be rerun before it is
// dropped with a warning.
func WithMaxRetries(n int) QueueOption {
	return func(q *TaskQueue) { q.maxRetries = n }
}

// NewTaskQueue creates a queue executing tasks through run, which must hand
// its argument to the UI thread (the fyne host passes fyne.Do).
func NewTaskQueue(run func(func()), logger zerolog.Logger, opts ...QueueOption) *TaskQueue {
	q := &TaskQueue{
		run:        run,
		retryDelay: defaultRetryDelay,
		maxRetries: defaultMaxRetries,
		logger:     logger.With().Str("component", "taskqueue").Logger(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Post schedules a task on the UI thread. The name is only used for logging.
func (q *TaskQueue) Post(name string, t Task) {
	q.post(name, t, 0)
}

func (q *TaskQueue) post(name string, t Task, attempt int) {
	q.run(func() {
		if !t() {
			return
		}
		if attempt >= q.maxRetries {
			q.logger.Warn().
				Str("task", name).
				Int("attempts", attempt+1).
				Msg("task still not ready, giving up")
			return
		}
		time.AfterFunc(q.retryDelay, func() {
			q.post(name, t, attempt+1)
		})
	})
}
