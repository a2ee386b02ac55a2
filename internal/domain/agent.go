package domain

import "time"

// AgentRole enumerates console operator roles.
type AgentRole string

const (
	AgentRoleAgent      AgentRole = "AGENT"
	AgentRoleSupervisor AgentRole = "SUPERVISOR"
	AgentRoleAdmin      AgentRole = "ADMIN"
)

// Agent models a support agent or administrator.
type Agent struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Role           AgentRole
	DepartmentID   *string
	DepartmentName *string
	Active         bool
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Protected reports whether the agent can be removed from the console.
// Administrators cannot.
func (a Agent) Protected() bool {
	return a.Role == AgentRoleAdmin
}
