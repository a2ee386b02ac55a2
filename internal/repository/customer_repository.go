package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
)

// CustomerRepository lists and removes customers.
type CustomerRepository interface {
	ListRepository[domain.Customer]
}

var customerSpec = listSpec{
	columns: `c.id, c.name, c.email, c.company, c.status,
              (SELECT COUNT(*) FROM tickets t WHERE t.customer_id = c.id AND t.status NOT IN ('RESOLVED','CLOSED')),
              c.created_at, c.updated_at`,
	from: `customers c`,
	sortable: map[string]string{
		"name":    "c.name",
		"email":   "c.email",
		"company": "c.company",
		"status":  "c.status",
		"created": "c.created_at",
	},
	search:       []string{"c.name", "c.email", "c.company"},
	defaultOrder: "c.created_at DESC",
	key:          "c.id",
	table:        "customers",
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository builds the repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) List(ctx context.Context, q listing.Query) (listing.Page[domain.Customer], error) {
	return listPage(ctx, r.pool, customerSpec, q, scanCustomer)
}

func (r *customerRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return deleteMany(ctx, r.pool, customerSpec, ids)
}

func scanCustomer(row pgx.CollectableRow) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.Status, &c.OpenTickets, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
