package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
)

// LoginRequest payload for agent login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AgentSummary is the agent returned alongside a token.
type AgentSummary struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Role  domain.AgentRole `json:"role"`
}

// NewAgentSummary strips the password hash.
func NewAgentSummary(a *domain.Agent) AgentSummary {
	return AgentSummary{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
