package domain

import "time"

// Role is a named permission set. System roles ship with the product and
// cannot be deleted.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string
	System      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
