package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
	"github.com/spec-kit/helpdesk-admin/internal/persistence"
	"github.com/spec-kit/helpdesk-admin/internal/repository"
	"github.com/spec-kit/helpdesk-admin/internal/service"
	"github.com/spec-kit/helpdesk-admin/internal/table"
)

// cliSession owns the throwaway state of one invocation.
var cliSession = service.Session{ID: "helpdeskctl", AgentID: "helpdeskctl", Role: domain.AgentRoleAdmin}

func newTablesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the available tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			svc := e.tableService(nil, persistence.NewMemoryTableStateStore())
			for _, r := range svc.Resources() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", r.Name, r.Title)
			}
			return nil
		},
	}
}

type listFlags struct {
	search   string
	page     int
	pageSize int
	sort     string
	order    string
	hide     []string
	skeleton bool
}

// listRequest turns flags into the stored state and the interactions that
// produce the requested page.
func (f listFlags) listRequest(defaultPageSize int) (persistence.TableState, []service.Interaction, error) {
	order, err := table.ParseOrder(f.order)
	if err != nil {
		return persistence.TableState{}, nil, err
	}
	if f.sort != "" && order == table.OrderNone {
		order = table.OrderAsc
	}
	state := persistence.TableState{
		Query: listing.Query{Page: 1, PageSize: defaultPageSize, SortField: f.sort, SortOrder: order}.Normalize(),
		Table: table.State{HiddenColumns: f.hide},
	}

	var interactions []service.Interaction
	if f.search != "" {
		interactions = append(interactions, service.Interaction{Kind: service.InteractionSearch, Search: f.search})
	}
	if f.page > 0 || f.pageSize > 0 {
		interactions = append(interactions, service.Interaction{Kind: service.InteractionPage, Page: f.page, PageSize: f.pageSize})
	}
	return state, interactions, nil
}

func newListCommand(opts *options) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list <table>",
		Short: "Print one page of a table",
		Example: `  helpdeskctl list tickets --search printer --sort updated --order desc
  helpdeskctl list agents --page 2 --page-size 20 --hide email`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resource := args[0]

			e, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			state, interactions, err := f.listRequest(e.cfg.Table.DefaultPageSize)
			if err != nil {
				return err
			}
			store := persistence.NewMemoryTableStateStore()
			if f.sort != "" || len(f.hide) > 0 {
				if err := store.Save(ctx, cliSession.ID, resource, state); err != nil {
					return err
				}
			}
			svc := e.tableService(e.pg.PoolHandle(), store)

			var view table.View
			if f.skeleton {
				view, err = svc.Skeleton(ctx, cliSession, resource)
			} else {
				view, err = svc.Render(ctx, cliSession, resource, interactions...)
			}
			if err != nil {
				return err
			}
			if f.sort != "" && view.Sort.OrderBy != f.sort {
				return fmt.Errorf("column %q of %s is not sortable", f.sort, resource)
			}
			RenderView(cmd.OutOrStdout(), view)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.search, "search", "", "filter rows by a search term")
	cmd.Flags().IntVar(&f.page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page")
	cmd.Flags().StringVar(&f.sort, "sort", "", "column key to sort by")
	cmd.Flags().StringVar(&f.order, "order", "asc", "sort order (asc, desc)")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "column keys to hide")
	cmd.Flags().BoolVar(&f.skeleton, "skeleton", false, "print the loading placeholder instead of rows")
	return cmd
}

func newCreateAgentCommand(opts *options) *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "create-agent",
		Short: "Register a console agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			agents := repository.NewAgentRepository(e.pg.PoolHandle())
			authService := service.NewAuthService(*e.cfg, agents, nil, e.logger)
			agent, err := authService.CreateAgent(ctx, name, email, password, domain.AgentRole(strings.ToUpper(role)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created agent %s (%s, %s)\n", agent.ID, agent.Email, agent.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", string(domain.AgentRoleAgent), "AGENT, SUPERVISOR or ADMIN")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newMigrateCommand(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			if err := persistence.RunMigrations(ctx, e.pg.PoolHandle(), dir, e.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", persistence.DefaultMigrationsDir, "directory of .sql files")
	return cmd
}
