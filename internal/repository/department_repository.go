package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	ListRepository[domain.Department]
}

var departmentSpec = listSpec{
	columns: `d.id, d.name, d.description, d.email,
              (SELECT COUNT(*) FROM agents a WHERE a.department_id = d.id),
              d.is_active, d.created_at, d.updated_at`,
	from: `departments d`,
	sortable: map[string]string{
		"name":    "d.name",
		"email":   "d.email",
		"active":  "d.is_active",
		"created": "d.created_at",
	},
	search:       []string{"d.name", "d.description", "d.email"},
	defaultOrder: "d.name ASC",
	key:          "d.id",
	table:        "departments",
	// departments still referenced by tickets stay
	deleteGuard: "NOT EXISTS (SELECT 1 FROM tickets t WHERE t.department_id = departments.id)",
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) List(ctx context.Context, q listing.Query) (listing.Page[domain.Department], error) {
	return listPage(ctx, r.pool, departmentSpec, q, scanDepartment)
}

func (r *departmentRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return deleteMany(ctx, r.pool, departmentSpec, ids)
}

func scanDepartment(row pgx.CollectableRow) (domain.Department, error) {
	var d domain.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Email, &d.AgentCount, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
