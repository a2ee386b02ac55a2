package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
)

// SLAPolicyRepository lists and removes SLA policies.
type SLAPolicyRepository interface {
	ListRepository[domain.SLAPolicy]
}

var slaPolicySpec = listSpec{
	columns: `s.id, s.name, s.priority, s.first_response_minutes, s.resolution_minutes,
              s.business_hours_only, s.is_active, s.created_at, s.updated_at`,
	from: `sla_policies s`,
	sortable: map[string]string{
		"name":           "s.name",
		"priority":       "s.priority",
		"first_response": "s.first_response_minutes",
		"resolution":     "s.resolution_minutes",
		"active":         "s.is_active",
	},
	search:       []string{"s.name"},
	defaultOrder: "s.first_response_minutes ASC",
	key:          "s.id",
	table:        "sla_policies",
}

type slaPolicyRepository struct {
	pool *pgxpool.Pool
}

// NewSLAPolicyRepository builds the repository.
func NewSLAPolicyRepository(pool *pgxpool.Pool) SLAPolicyRepository {
	return &slaPolicyRepository{pool: pool}
}

func (r *slaPolicyRepository) List(ctx context.Context, q listing.Query) (listing.Page[domain.SLAPolicy], error) {
	return listPage(ctx, r.pool, slaPolicySpec, q, scanSLAPolicy)
}

func (r *slaPolicyRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return deleteMany(ctx, r.pool, slaPolicySpec, ids)
}

func scanSLAPolicy(row pgx.CollectableRow) (domain.SLAPolicy, error) {
	var p domain.SLAPolicy
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Priority,
		&p.FirstResponseMinutes,
		&p.ResolutionMinutes,
		&p.BusinessHoursOnly,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
