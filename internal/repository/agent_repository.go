package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
)

// AgentRepository handles persistence for console agents.
type AgentRepository interface {
	ListRepository[domain.Agent]
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	TouchLogin(ctx context.Context, id string) error
}

const agentColumns = `a.id, a.name, a.email, a.password_hash, a.role, d.id, d.name,
              a.active_flag, a.last_login_at, a.created_at, a.updated_at`

var agentSpec = listSpec{
	columns: agentColumns,
	from:    `agents a LEFT JOIN departments d ON d.id = a.department_id`,
	sortable: map[string]string{
		"name":       "a.name",
		"email":      "a.email",
		"role":       "a.role",
		"department": "d.name",
		"active":     "a.active_flag",
		"last_login": "a.last_login_at",
		"created":    "a.created_at",
	},
	search:       []string{"a.name", "a.email"},
	defaultOrder: "a.name ASC",
	key:          "a.id",
	table:        "agents",
	deleteGuard:  "role <> 'ADMIN'",
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates the repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

func (r *agentRepository) List(ctx context.Context, q listing.Query) (listing.Page[domain.Agent], error) {
	return listPage(ctx, r.pool, agentSpec, q, scanAgent)
}

func (r *agentRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return deleteMany(ctx, r.pool, agentSpec, ids)
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	const query = `
        INSERT INTO agents (name, email, password_hash, role, department_id, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		agent.Name,
		agent.Email,
		agent.PasswordHash,
		agent.Role,
		agent.DepartmentID,
		agent.Active,
	).Scan(&agent.ID, &agent.CreatedAt, &agent.UpdatedAt)
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	return r.fetchSingle(ctx, "a.id = $1", id)
}

func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	return r.fetchSingle(ctx, "LOWER(a.email) = LOWER($1)", email)
}

func (r *agentRepository) TouchLogin(ctx context.Context, id string) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE agents SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agentRepository) fetchSingle(ctx context.Context, cond string, arg any) (*domain.Agent, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	query := "SELECT " + agentColumns + " FROM " + agentSpec.from + " WHERE " + cond
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	agent, err := pgx.CollectExactlyOneRow(rows, scanAgent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func scanAgent(row pgx.CollectableRow) (domain.Agent, error) {
	var agent domain.Agent
	err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.PasswordHash,
		&agent.Role,
		&agent.DepartmentID,
		&agent.DepartmentName,
		&agent.Active,
		&agent.LastLoginAt,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	return agent, err
}
