package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen        TicketStatus = "OPEN"
	TicketStatusInProgress  TicketStatus = "IN_PROGRESS"
	TicketStatusPendingUser TicketStatus = "PENDING_USER"
	TicketStatusResolved    TicketStatus = "RESOLVED"
	TicketStatusClosed      TicketStatus = "CLOSED"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket is a support request as listed in the admin console. Names of the
// related customer, department and assignee are joined in for display.
type Ticket struct {
	ID             string
	ExternalKey    string
	Title          string
	Status         TicketStatus
	Priority       TicketPriority
	CustomerID     string
	CustomerName   string
	DepartmentID   string
	DepartmentName string
	AssigneeID     *string
	AssigneeName   *string
	Tags           []string
	SLADueAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
