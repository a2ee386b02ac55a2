package domain

import "time"

// Token is the metadata of an issued access token. Its ID doubles as the
// console session id that table state is stored under.
type Token struct {
	ID        string
	AgentID   string
	Role      AgentRole
	ExpiresAt time.Time
	IssuedAt  time.Time
}
