package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
)

// EmailSettingRepository lists and removes mailbox settings.
type EmailSettingRepository interface {
	ListRepository[domain.EmailSetting]
}

var emailSettingSpec = listSpec{
	columns: `e.id, e.mailbox, e.host, e.port, e.protocol, e.use_tls, e.department_id,
              e.is_active, e.last_checked_at, e.created_at, e.updated_at`,
	from: `email_settings e`,
	sortable: map[string]string{
		"mailbox":      "e.mailbox",
		"host":         "e.host",
		"protocol":     "e.protocol",
		"active":       "e.is_active",
		"last_checked": "e.last_checked_at",
	},
	search:       []string{"e.mailbox", "e.host"},
	defaultOrder: "e.mailbox ASC",
	key:          "e.id",
	table:        "email_settings",
}

type emailSettingRepository struct {
	pool *pgxpool.Pool
}

// NewEmailSettingRepository builds the repository.
func NewEmailSettingRepository(pool *pgxpool.Pool) EmailSettingRepository {
	return &emailSettingRepository{pool: pool}
}

func (r *emailSettingRepository) List(ctx context.Context, q listing.Query) (listing.Page[domain.EmailSetting], error) {
	return listPage(ctx, r.pool, emailSettingSpec, q, scanEmailSetting)
}

func (r *emailSettingRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return deleteMany(ctx, r.pool, emailSettingSpec, ids)
}

func scanEmailSetting(row pgx.CollectableRow) (domain.EmailSetting, error) {
	var e domain.EmailSetting
	err := row.Scan(
		&e.ID,
		&e.Mailbox,
		&e.Host,
		&e.Port,
		&e.Protocol,
		&e.UseTLS,
		&e.DepartmentID,
		&e.Active,
		&e.LastCheckedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
