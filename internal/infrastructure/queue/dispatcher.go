package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/teamforge/ems-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the recipient id, guaranteeing per-recipient delivery ordering.
// Each worker persists the notification and, when an event is attached,
// publishes it to the recipient's relay room.
type Dispatcher struct {
	workers   []chan ports.NotificationInput
	service   ports.NotificationService
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, publisher ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.NotificationInput, numWorkers),
		service:   service,
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.NotificationInput) {
	d.workers[d.shardIndex(in.RecipientID)] <- in
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			if _, err := d.service.Create(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("recipient_id", in.RecipientID).
					Int("worker_id", id).
					Msg("notification persistence failed")
				continue
			}
			if in.Event != nil {
				d.publisher.Publish(ports.UserRoom(in.RecipientID), *in.Event)
			}
		}
	}
}
