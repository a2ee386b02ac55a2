package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-admin/internal/events"
)

// Recorder consumes events off the request path.
type Recorder interface {
	Record(ctx context.Context, event events.Event) error
}

// AuditWorker queues published events and records them on its own goroutine
// so a slow sink never delays a request.
type AuditWorker struct {
	recorder Recorder
	logger   *zap.Logger
	queue    chan events.Event
	done     chan struct{}
	cancel   []func()
}

// NewAuditWorker subscribes to every audited event type.
func NewAuditWorker(dispatcher events.Dispatcher, recorder Recorder, logger *zap.Logger, buffer int) *AuditWorker {
	if buffer <= 0 {
		buffer = 64
	}
	w := &AuditWorker{
		recorder: recorder,
		logger:   logger,
		queue:    make(chan events.Event, buffer),
		done:     make(chan struct{}),
	}
	for _, t := range []events.EventType{events.EventAgentLoggedIn, events.EventRowsDeleted} {
		w.cancel = append(w.cancel, dispatcher.Subscribe(t, w.enqueue))
	}
	return w
}

func (w *AuditWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("audit queue full; dropping event", zap.String("event_id", event.ID), zap.String("type", string(event.Type)))
	}
	return nil
}

// Run records queued events until ctx is cancelled. It then unsubscribes and
// drains what is left.
func (w *AuditWorker) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case event := <-w.queue:
			w.record(event)
		case <-ctx.Done():
			for _, unsubscribe := range w.cancel {
				unsubscribe()
			}
			for {
				select {
				case event := <-w.queue:
					w.record(event)
				default:
					return
				}
			}
		}
	}
}

// Done is closed when Run returns.
func (w *AuditWorker) Done() <-chan struct{} {
	return w.done
}

func (w *AuditWorker) record(event events.Event) {
	if err := w.recorder.Record(context.Background(), event); err != nil {
		w.logger.Warn("audit record failed", zap.String("event_id", event.ID), zap.Error(err))
	}
}
