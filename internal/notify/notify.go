// Package notify delivers fire-and-forget messages to users. Delivery never
// blocks or fails the operation that triggered it.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindAppointmentRequested Kind = "appointment_requested"
	KindAppointmentConfirmed Kind = "appointment_confirmed"
	KindAppointmentRejected  Kind = "appointment_rejected"
	KindAppointmentCompleted Kind = "appointment_completed"
)

type Notifier interface {
	Notify(ctx context.Context, userID uint, kind Kind, payload map[string]any)
}

type Message struct {
	UserID  uint           `json:"user_id"`
	Kind    Kind           `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
	SentAt  time.Time      `json:"sent_at"`
}

// Sink performs the actual delivery.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

const sendTimeout = 5 * time.Second

type Dispatcher struct {
	sink  Sink
	log   logrus.FieldLogger
	queue chan Message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, size int, log logrus.FieldLogger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Message, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sink.Send(ctx, msg); err != nil {
			d.log.WithError(err).
				WithFields(logrus.Fields{"user_id": msg.UserID, "kind": msg.Kind}).
				Warn("notification delivery failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Notify(_ context.Context, userID uint, kind Kind, payload map[string]any) {
	msg := Message{UserID: userID, Kind: kind, Payload: payload, SentAt: time.Now().UTC()}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.WithField("kind", kind).Warn("notification dispatcher closed, dropping message")
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.log.WithField("kind", kind).Warn("notification queue full, dropping message")
	}
}

// Close stops accepting messages and waits for queued ones to be sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
