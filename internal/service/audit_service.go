package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-admin/internal/events"
)

// AuditService records console events to the log and keeps the most recent
// ones in memory.
type AuditService struct {
	logger *zap.Logger
	limit  int

	mu     sync.Mutex
	recent []events.Event
}

// NewAuditService keeps up to limit recent events.
func NewAuditService(logger *zap.Logger, limit int) *AuditService {
	if limit <= 0 {
		limit = 100
	}
	return &AuditService{logger: logger, limit: limit}
}

// Record logs one event.
func (a *AuditService) Record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("agent_id", event.Actor.AgentID),
		zap.String("role", string(event.Actor.Role)),
		zap.Time("at", event.Timestamp),
	}
	if event.Resource != "" {
		fields = append(fields, zap.String("resource", event.Resource))
	}
	switch p := event.Payload.(type) {
	case events.RowsDeletedPayload:
		fields = append(fields, zap.Strings("keys", p.RequestedKeys), zap.Int64("deleted", p.Deleted))
	case events.AgentLoggedInPayload:
		fields = append(fields, zap.String("email", p.Email))
	default:
		fields = append(fields, zap.Any("payload", p))
	}
	a.logger.Info("audit", fields...)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.recent = append(a.recent, event)
	if over := len(a.recent) - a.limit; over > 0 {
		a.recent = append([]events.Event(nil), a.recent[over:]...)
	}
	return nil
}

// Recent returns the retained events, oldest first.
func (a *AuditService) Recent() []events.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]events.Event(nil), a.recent...)
}
