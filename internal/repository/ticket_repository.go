package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
)

// TicketRepository lists and removes tickets for the admin console.
type TicketRepository interface {
	ListRepository[domain.Ticket]
}

var ticketSpec = listSpec{
	columns: `t.id, t.external_key, t.title, t.status, t.priority,
              c.id, c.name, d.id, d.name, a.id, a.name,
              t.tags, t.sla_due_at, t.created_at, t.updated_at`,
	from: `tickets t
              JOIN customers c ON c.id = t.customer_id
              JOIN departments d ON d.id = t.department_id
              LEFT JOIN agents a ON a.id = t.assignee_agent_id`,
	sortable: map[string]string{
		"key":        "t.external_key",
		"title":      "t.title",
		"status":     "t.status",
		"priority":   "t.priority",
		"customer":   "c.name",
		"department": "d.name",
		"assignee":   "a.name",
		"sla_due":    "t.sla_due_at",
		"created":    "t.created_at",
		"updated":    "t.updated_at",
	},
	search:       []string{"t.external_key", "t.title", "c.name"},
	defaultOrder: "t.updated_at DESC",
	key:          "t.id",
	table:        "tickets",
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) List(ctx context.Context, q listing.Query) (listing.Page[domain.Ticket], error) {
	return listPage(ctx, r.pool, ticketSpec, q, scanTicket)
}

func (r *ticketRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return deleteMany(ctx, r.pool, ticketSpec, ids)
}

func scanTicket(row pgx.CollectableRow) (domain.Ticket, error) {
	var ticket domain.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.ExternalKey,
		&ticket.Title,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CustomerID,
		&ticket.CustomerName,
		&ticket.DepartmentID,
		&ticket.DepartmentName,
		&ticket.AssigneeID,
		&ticket.AssigneeName,
		&ticket.Tags,
		&ticket.SLADueAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	return ticket, err
}
