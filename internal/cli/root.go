// Package cli implements helpdeskctl, a terminal front end for the admin
// tables.
package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-admin/internal/config"
	"github.com/spec-kit/helpdesk-admin/internal/observability"
	"github.com/spec-kit/helpdesk-admin/internal/persistence"
	"github.com/spec-kit/helpdesk-admin/internal/repository"
	"github.com/spec-kit/helpdesk-admin/internal/service"
)

type options struct {
	logLevel string
}

// NewRootCommand builds the helpdeskctl command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "helpdeskctl",
		Short:         "Browse and maintain helpdesk admin tables from a terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newTablesCommand(opts),
		newListCommand(opts),
		newCreateAgentCommand(opts),
		newMigrateCommand(opts),
	)
	return root
}

// env holds what a command needs once configuration is loaded.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	pg     *persistence.Postgres
}

func (o *options) load() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewCLILogger(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &env{cfg: cfg, logger: logger}, nil
}

// connect is load plus a Postgres pool.
func (o *options) connect(ctx context.Context) (*env, error) {
	e, err := o.load()
	if err != nil {
		return nil, err
	}
	e.pg, err = persistence.NewPostgres(ctx, e.cfg.Postgres, e.logger)
	if err != nil {
		_ = e.logger.Sync()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return e, nil
}

func (e *env) close() {
	e.pg.Close()
	_ = e.logger.Sync()
}

// tableService registers every resource against pool. A nil pool is enough
// to enumerate the tables.
func (e *env) tableService(pool *pgxpool.Pool, store persistence.TableStateStore) *service.TableService {
	return service.NewTableService(e.cfg.Table, service.TableDependencies{
		Tickets:       repository.NewTicketRepository(pool),
		Agents:        repository.NewAgentRepository(pool),
		Customers:     repository.NewCustomerRepository(pool),
		Roles:         repository.NewRoleRepository(pool),
		Departments:   repository.NewDepartmentRepository(pool),
		SLAPolicies:   repository.NewSLAPolicyRepository(pool),
		EmailSettings: repository.NewEmailSettingRepository(pool),
		Store:         store,
		Logger:        e.logger,
	})
}
