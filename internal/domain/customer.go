package domain

import "time"

// CustomerStatus represents lifecycle states for a customer.
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "ACTIVE"
	CustomerStatusSuspended CustomerStatus = "SUSPENDED"
)

// Customer is an end-user who submits tickets.
type Customer struct {
	ID          string
	Name        string
	Email       string
	Company     string
	Status      CustomerStatus
	OpenTickets int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
