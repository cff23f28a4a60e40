package model

import "github.com/google/uuid"

// Ticket represents a unit of work tracked on the board.
type Ticket struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`   // open, in_progress, blocked, done
	Priority    string    `json:"priority"` // low, medium, high, critical
	AssignedTo  string    `json:"assigned_to"`
	CreatedAt   int64     `json:"created_at"` // µs since epoch
	UpdatedAt   int64     `json:"updated_at"` // µs since epoch
}

// Agent represents a worker that picks up tickets.
type Agent struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"` // idle, working, waiting, offline
	TicketID  string    `json:"ticket_id,omitempty"`
	StartedAt int64     `json:"started_at"` // µs since epoch
	UpdatedAt int64     `json:"updated_at"` // µs since epoch
}

// Task represents a sub-item of a ticket.
type Task struct {
	ID        uuid.UUID `json:"id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UpdatedAt int64     `json:"updated_at"` // µs since epoch
}
