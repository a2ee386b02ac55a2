package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-admin/internal/auth"
	"github.com/spec-kit/helpdesk-admin/internal/config"
	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/events"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
	"github.com/spec-kit/helpdesk-admin/internal/observability"
	"github.com/spec-kit/helpdesk-admin/internal/persistence"
	"github.com/spec-kit/helpdesk-admin/internal/repository"
	"github.com/spec-kit/helpdesk-admin/internal/table"
	apperrors "github.com/spec-kit/helpdesk-admin/pkg/util/errorutil"
)

// InteractionKind names one user action on a table.
type InteractionKind string

const (
	InteractionSort         InteractionKind = "sort"
	InteractionSearch       InteractionKind = "search"
	InteractionPage         InteractionKind = "page"
	InteractionToggleColumn InteractionKind = "toggle_column"
	InteractionToggleRow    InteractionKind = "toggle_row"
	InteractionSelectAll    InteractionKind = "select_all"
)

// Interaction is one user action. Only the fields of its kind are read.
type Interaction struct {
	Kind     InteractionKind
	Column   string
	Visible  bool
	Key      string
	Checked  bool
	Page     int
	PageSize int
	Search   string
}

// changesQuery reports whether the interaction must run before the fetch.
func (i Interaction) changesQuery() bool {
	switch i.Kind {
	case InteractionSort, InteractionSearch, InteractionPage:
		return true
	}
	return false
}

// Session identifies whose table state is read and written.
type Session struct {
	ID      string
	AgentID string
	Role    domain.AgentRole
}

// SessionFor builds a session from an authenticated principal.
func SessionFor(p *auth.Principal) Session {
	return Session{ID: p.SessionID, AgentID: p.Agent.ID, Role: p.Agent.Role}
}

// ResourceInfo describes one registered table.
type ResourceInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// TableDependencies encapsulates what the table service needs.
type TableDependencies struct {
	Tickets       repository.TicketRepository
	Agents        repository.AgentRepository
	Customers     repository.CustomerRepository
	Roles         repository.RoleRepository
	Departments   repository.DepartmentRepository
	SLAPolicies   repository.SLAPolicyRepository
	EmailSettings repository.EmailSettingRepository
	Store         persistence.TableStateStore
	Dispatcher    events.Dispatcher
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// TableService renders the admin tables. Every call rebuilds the table from
// the stored state, applies the interactions and stores the result.
type TableService struct {
	cfg        config.TableConfig
	resources  map[string]resourceTable
	order      []string
	store      persistence.TableStateStore
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewTableService registers every resource that has a repository.
func NewTableService(cfg config.TableConfig, deps TableDependencies) *TableService {
	s := &TableService{
		cfg:        cfg,
		resources:  make(map[string]resourceTable),
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
	if s.store == nil {
		s.store = persistence.NewMemoryTableStateStore()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if deps.Tickets != nil {
		s.register(ticketTable(deps.Tickets))
	}
	if deps.Agents != nil {
		s.register(agentTable(deps.Agents))
	}
	if deps.Customers != nil {
		s.register(customerTable(deps.Customers))
	}
	if deps.Roles != nil {
		s.register(roleTable(deps.Roles))
	}
	if deps.Departments != nil {
		s.register(departmentTable(deps.Departments))
	}
	if deps.SLAPolicies != nil {
		s.register(slaPolicyTable(deps.SLAPolicies))
	}
	if deps.EmailSettings != nil {
		s.register(emailSettingTable(deps.EmailSettings))
	}
	return s
}

func (s *TableService) register(r resourceTable) {
	name := r.info().Name
	if _, exists := s.resources[name]; !exists {
		s.order = append(s.order, name)
	}
	s.resources[name] = r
}

// Resources lists the registered tables in registration order.
func (s *TableService) Resources() []ResourceInfo {
	out := make([]ResourceInfo, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.resources[name].info())
	}
	return out
}

func (s *TableService) lookup(resource string) (resourceTable, error) {
	r, ok := s.resources[resource]
	if !ok {
		return nil, apperrors.NewNotFound("table", map[string]any{"resource": resource})
	}
	return r, nil
}

func (s *TableService) request(session Session, state persistence.TableState, interactions []Interaction) renderRequest {
	return renderRequest{
		state:        state,
		interactions: interactions,
		canDelete:    auth.CanDelete(session.Role),
		cfg:          s.cfg,
	}
}

// Render applies the interactions in order and returns the resulting view.
// Sort, search and page changes are applied before the fetch; row, select-all
// and column changes after it, against the fetched page.
func (s *TableService) Render(ctx context.Context, session Session, resource string, interactions ...Interaction) (table.View, error) {
	r, err := s.lookup(resource)
	if err != nil {
		return table.View{}, err
	}
	if err := s.validate(r, interactions); err != nil {
		return table.View{}, err
	}

	state := s.loadState(ctx, session, r)
	view, next, err := r.render(ctx, s.request(session, state, interactions))
	if err != nil {
		return table.View{}, apperrors.MapError(err)
	}
	s.saveState(ctx, session, resource, next)

	for _, in := range interactions {
		s.metrics.RecordTableInteraction(resource, string(in.Kind))
	}
	return view, nil
}

// Skeleton renders the loading state of a table without fetching rows.
func (s *TableService) Skeleton(ctx context.Context, session Session, resource string) (table.View, error) {
	r, err := s.lookup(resource)
	if err != nil {
		return table.View{}, err
	}
	state := s.loadState(ctx, session, r)
	return r.skeleton(s.request(session, state, nil)), nil
}

// DeleteSelected deletes every selected row of the session's table, clears
// the selection and publishes an audit event. It returns the number of rows
// removed, which can be lower than the selection when rows are protected.
func (s *TableService) DeleteSelected(ctx context.Context, session Session, resource string) (int64, error) {
	r, err := s.lookup(resource)
	if err != nil {
		return 0, err
	}
	if !auth.CanDelete(session.Role) {
		return 0, apperrors.NewForbidden("role may not delete rows")
	}

	state := s.loadState(ctx, session, r)
	result, err := r.deleteSelected(ctx, s.request(session, state, nil))
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	s.saveState(ctx, session, resource, result.state)
	s.metrics.RecordTableInteraction(resource, "delete")

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRowsDeleted,
		Resource:  resource,
		Actor:     events.Actor{AgentID: session.AgentID, Role: session.Role, Session: session.ID},
		Timestamp: time.Now().UTC(),
		Payload:   events.RowsDeletedPayload{RequestedKeys: result.keys, Deleted: result.deleted},
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish event failed", zap.String("type", string(event.Type)), zap.Error(err))
		}
	}
	return result.deleted, nil
}

// ResetState forgets the stored state of a table.
func (s *TableService) ResetState(ctx context.Context, session Session, resource string) error {
	if _, err := s.lookup(resource); err != nil {
		return err
	}
	return s.store.Delete(ctx, session.ID, resource)
}

func (s *TableService) validate(r resourceTable, interactions []Interaction) error {
	for _, in := range interactions {
		switch in.Kind {
		case InteractionSort:
			if !r.hasColumn(in.Column) {
				return apperrors.NewValidationError("unknown column", map[string]any{"column": in.Column})
			}
		case InteractionToggleColumn:
			if !r.hasColumn(in.Column) {
				return apperrors.NewValidationError("unknown column", map[string]any{"column": in.Column})
			}
			if !r.togglable(in.Column) {
				return apperrors.NewValidationError("column cannot be shown or hidden", map[string]any{"column": in.Column})
			}
		case InteractionPage:
			if in.Page < 0 || in.PageSize < 0 {
				return apperrors.NewValidationError("page and page_size must not be negative", nil)
			}
			if in.PageSize > 0 && len(s.cfg.PageSizeOptions) > 0 && !slices.Contains(s.cfg.PageSizeOptions, in.PageSize) {
				return apperrors.NewValidationError("unsupported page size", map[string]any{
					"page_size": in.PageSize,
					"options":   s.cfg.PageSizeOptions,
				})
			}
		case InteractionToggleRow:
			if in.Key == "" {
				return apperrors.NewValidationError("row key required", nil)
			}
		case InteractionSearch, InteractionSelectAll:
		default:
			return apperrors.NewValidationError(fmt.Sprintf("unknown interaction %q", in.Kind), nil)
		}
	}
	return nil
}

func (s *TableService) loadState(ctx context.Context, session Session, r resourceTable) persistence.TableState {
	name := r.info().Name
	state, ok, err := s.store.Load(ctx, session.ID, name)
	if err != nil {
		s.logger.Warn("load table state failed; using defaults", zap.String("resource", name), zap.Error(err))
	}
	if err != nil || !ok {
		return persistence.TableState{Query: r.defaultQuery(s.cfg.DefaultPageSize)}
	}
	return state
}

func (s *TableService) saveState(ctx context.Context, session Session, resource string, state persistence.TableState) {
	state.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, session.ID, resource, state); err != nil {
		s.logger.Warn("save table state failed", zap.String("resource", resource), zap.Error(err))
	}
}

// renderRequest carries what one resource needs to rebuild its table.
type renderRequest struct {
	state        persistence.TableState
	interactions []Interaction
	canDelete    bool
	cfg          config.TableConfig
}

type deleteResult struct {
	deleted int64
	keys    []string
	state   persistence.TableState
}

// resourceTable hides the row type of a registered resource.
type resourceTable interface {
	info() ResourceInfo
	hasColumn(key string) bool
	togglable(key string) bool
	defaultQuery(pageSize int) listing.Query
	render(ctx context.Context, req renderRequest) (table.View, persistence.TableState, error)
	skeleton(req renderRequest) table.View
	deleteSelected(ctx context.Context, req renderRequest) (deleteResult, error)
}

// tableResource binds a row type to its columns and repository.
type tableResource[T any] struct {
	name        string
	title       string
	columns     table.Columns[T]
	rowKey      table.RowKey[T]
	disabled    func(T) bool
	repo        repository.ListRepository[T]
	defaultSort table.SortState
}

func (r *tableResource[T]) info() ResourceInfo {
	return ResourceInfo{Name: r.name, Title: r.title}
}

func (r *tableResource[T]) hasColumn(key string) bool {
	_, ok := r.columns.Lookup(key)
	return ok
}

// togglable reports whether key appears in the column menu. Columns declared
// hidden never render and cannot be switched on.
func (r *tableResource[T]) togglable(key string) bool {
	col, ok := r.columns.Lookup(key)
	return ok && !col.Hidden
}

func (r *tableResource[T]) sortable(key string) bool {
	col, ok := r.columns.Lookup(key)
	return ok && col.IsSortable()
}

func (r *tableResource[T]) defaultQuery(pageSize int) listing.Query {
	return listing.Query{
		Page:      1,
		PageSize:  pageSize,
		SortField: r.defaultSort.OrderBy,
		SortOrder: r.defaultSort.Order,
	}.Normalize()
}

func (r *tableResource[T]) props(ctrl *listing.Controller[T], saved table.State, req renderRequest, onDelete func([]string)) table.Props[T] {
	policy := table.PolicyPrune
	if req.cfg.KeepSelectionAcrossPages {
		policy = table.PolicyKeep
	}
	selection := &table.RowSelection[T]{Policy: policy}
	if r.disabled != nil {
		selection.GetCheckboxProps = func(row T) table.CheckboxProps {
			return table.CheckboxProps{Disabled: r.disabled(row)}
		}
	}
	toolbar := &table.Toolbar{Title: r.title}
	if req.canDelete {
		toolbar.OnDelete = onDelete
	}

	props := table.Props[T]{
		Columns:      r.columns,
		DataSource:   ctrl.Items(),
		RowKey:       r.rowKey,
		Pagination:   ctrl.Pagination(req.cfg.PageSizeOptions),
		RowSelection: selection,
		Toolbar:      toolbar,
		SkeletonRows: req.cfg.SkeletonRows,
		Size:         table.SizeMiddle,
	}
	saved.Sort = ctrl.Query().Sort()
	return table.WithState(props, saved)
}

func (r *tableResource[T]) applyQuery(ctrl *listing.Controller[T], in Interaction) error {
	switch in.Kind {
	case InteractionSort:
		sorter := table.NewSorter(ctrl.Query().Sort(), r.sortable, ctrl.SortHandler())
		if !sorter.RequestSort(in.Column) {
			return apperrors.NewValidationError("column is not sortable", map[string]any{"column": in.Column})
		}
	case InteractionSearch:
		ctrl.SetSearch(in.Search)
	case InteractionPage:
		if in.PageSize > 0 && in.PageSize != ctrl.Query().PageSize {
			ctrl.SetPageSize(in.PageSize)
		} else if in.Page > 0 {
			ctrl.SetPage(in.Page)
		}
	}
	return nil
}

func (r *tableResource[T]) applyRow(tbl *table.Table[T], in Interaction) error {
	switch in.Kind {
	case InteractionToggleRow:
		if !tbl.ToggleKey(in.Key) {
			return apperrors.NewValidationError("row is not selectable on this page", map[string]any{"key": in.Key})
		}
	case InteractionSelectAll:
		tbl.SelectAll(in.Checked)
	case InteractionToggleColumn:
		tbl.ToggleColumn(in.Column, in.Visible)
	}
	return nil
}

func (r *tableResource[T]) render(ctx context.Context, req renderRequest) (table.View, persistence.TableState, error) {
	ctrl := listing.NewController[T](r.repo, req.state.Query)
	for _, in := range req.interactions {
		if !in.changesQuery() {
			continue
		}
		if err := r.applyQuery(ctrl, in); err != nil {
			return table.View{}, req.state, err
		}
	}
	if err := ctrl.Load(ctx); err != nil {
		return table.View{}, req.state, err
	}

	// The view only advertises delete; the deletion runs in deleteSelected.
	tbl := table.New(r.props(ctrl, req.state.Table, req, func([]string) {}))
	for _, in := range req.interactions {
		if in.changesQuery() {
			continue
		}
		if err := r.applyRow(tbl, in); err != nil {
			return table.View{}, req.state, err
		}
	}
	return tbl.View(), persistence.TableState{Query: ctrl.Query(), Table: tbl.State()}, nil
}

func (r *tableResource[T]) skeleton(req renderRequest) table.View {
	ctrl := listing.NewController[T](r.repo, req.state.Query)
	props := r.props(ctrl, req.state.Table, req, nil)
	props.Loading = true
	props.Pagination = nil
	return table.New(props).View()
}

func (r *tableResource[T]) deleteSelected(ctx context.Context, req renderRequest) (deleteResult, error) {
	ctrl := listing.NewController[T](r.repo, req.state.Query)
	if err := ctrl.Load(ctx); err != nil {
		return deleteResult{}, err
	}

	var (
		result    deleteResult
		deleteErr error
	)
	tbl := table.New(r.props(ctrl, req.state.Table, req, func(keys []string) {
		result.keys = keys
		result.deleted, deleteErr = r.repo.DeleteMany(ctx, keys)
	}))
	if !tbl.Delete() {
		return deleteResult{}, apperrors.NewValidationError("no rows selected", nil)
	}
	if deleteErr != nil {
		return deleteResult{}, deleteErr
	}

	// Reload so the page is clamped if the last page emptied.
	if err := ctrl.Load(ctx); err != nil {
		return deleteResult{}, err
	}
	tableState := tbl.State()
	tableState.SelectedKeys = nil
	result.state = persistence.TableState{Query: ctrl.Query(), Table: tableState}
	return result, nil
}
