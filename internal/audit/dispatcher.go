package audit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const queueSize = 100

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Recorder is what use cases and handlers depend on.
type Recorder interface {
	Dispatch(ev Event)
}

// Sink persists a single audit event.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events on a background worker so that a slow or
// failing audit table never blocks an API call.
type Dispatcher struct {
	sink  Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			logrus.WithError(err).
				WithFields(logrus.Fields{"action": ev.Action, "entity": ev.Entity}).
				Error("audit write failed")
		}
		cancel()
	}
}

// Dispatch enqueues ev, dropping it when the queue is full or the
// dispatcher is closed.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		logrus.WithField("action", ev.Action).Warn("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		logrus.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

var _ Recorder = (*Dispatcher)(nil)
