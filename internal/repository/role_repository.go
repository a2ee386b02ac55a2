package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
)

// RoleRepository lists and removes permission roles. System roles are never
// deleted.
type RoleRepository interface {
	ListRepository[domain.Role]
}

var roleSpec = listSpec{
	columns: `r.id, r.name, r.description, r.permissions, r.is_system, r.created_at, r.updated_at`,
	from:    `roles r`,
	sortable: map[string]string{
		"name":    "r.name",
		"system":  "r.is_system",
		"created": "r.created_at",
	},
	search:       []string{"r.name", "r.description"},
	defaultOrder: "r.is_system DESC, r.name ASC",
	key:          "r.id",
	table:        "roles",
	deleteGuard:  "NOT is_system",
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository builds the repository.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) List(ctx context.Context, q listing.Query) (listing.Page[domain.Role], error) {
	return listPage(ctx, r.pool, roleSpec, q, scanRole)
}

func (r *roleRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return deleteMany(ctx, r.pool, roleSpec, ids)
}

func scanRole(row pgx.CollectableRow) (domain.Role, error) {
	var role domain.Role
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions, &role.System, &role.CreatedAt, &role.UpdatedAt)
	return role, err
}
