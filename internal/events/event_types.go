package events

import (
	"time"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAgentLoggedIn EventType = "agent_logged_in"
	EventRowsDeleted   EventType = "table_rows_deleted"
)

// Actor is the agent that caused an event.
type Actor struct {
	AgentID string           `json:"agent_id"`
	Role    domain.AgentRole `json:"role"`
	Session string           `json:"session,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Resource  string      `json:"resource,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RowsDeletedPayload describes a bulk delete from an admin table.
type RowsDeletedPayload struct {
	RequestedKeys []string `json:"requested_keys"`
	Deleted       int64    `json:"deleted"`
}

// AgentLoggedInPayload payload.
type AgentLoggedInPayload struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
