package domain

import "time"

// SLAPolicy sets response and resolution targets for a ticket priority.
type SLAPolicy struct {
	ID                   string
	Name                 string
	Priority             TicketPriority
	FirstResponseMinutes int
	ResolutionMinutes    int
	BusinessHoursOnly    bool
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
