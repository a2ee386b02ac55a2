package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-admin/internal/listing"
	"github.com/spec-kit/helpdesk-admin/internal/table"
)

var (
	// ErrNoDatabase is returned by repositories built without a pool.
	ErrNoDatabase = errors.New("repository: database not configured")
	// ErrInvalidID is returned when a row key is not a UUID.
	ErrInvalidID = errors.New("repository: invalid id")
)

// ListRepository is the part every admin table repository shares.
type ListRepository[T any] interface {
	List(ctx context.Context, q listing.Query) (listing.Page[T], error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// listSpec describes how one resource is listed and deleted.
type listSpec struct {
	columns string
	from    string
	// sortable maps a table column key to its SQL expression.
	sortable     map[string]string
	search       []string
	defaultOrder string
	key          string
	table        string
	// deleteGuard is ANDed to the delete filter to protect rows.
	deleteGuard string
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// build returns the page query, the count query and their shared args.
func (s listSpec) build(q listing.Query) (list, count string, args []any) {
	q = q.Normalize()

	where := ""
	if q.Search != "" && len(s.search) > 0 {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		parts := make([]string, len(s.search))
		for i, col := range s.search {
			parts[i] = fmt.Sprintf("%s ILIKE $1", col)
		}
		where = " WHERE (" + strings.Join(parts, " OR ") + ")"
	}

	order := s.defaultOrder
	if expr, ok := s.sortable[q.SortField]; ok {
		dir := "ASC"
		if q.SortOrder == table.OrderDesc {
			dir = "DESC"
		}
		order = fmt.Sprintf("%s %s NULLS LAST", expr, dir)
	}
	order += ", " + s.key + " ASC"

	list = fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT %d OFFSET %d",
		s.columns, s.from, where, order, q.Limit(), q.Offset())
	count = fmt.Sprintf("SELECT COUNT(*) FROM %s%s", s.from, where)
	return list, count, args
}

func (s listSpec) deleteSQL() string {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1::uuid[])", s.table)
	if s.deleteGuard != "" {
		query += " AND " + s.deleteGuard
	}
	return query
}

func listPage[T any](ctx context.Context, pool *pgxpool.Pool, spec listSpec, q listing.Query, scan pgx.RowToFunc[T]) (listing.Page[T], error) {
	if pool == nil {
		return listing.Page[T]{}, ErrNoDatabase
	}
	list, count, args := spec.build(q)

	var total int
	if err := pool.QueryRow(ctx, count, args...).Scan(&total); err != nil {
		return listing.Page[T]{}, err
	}
	rows, err := pool.Query(ctx, list, args...)
	if err != nil {
		return listing.Page[T]{}, err
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return listing.Page[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return listing.Page[T]{Items: items, Total: total}, nil
}

func deleteMany(ctx context.Context, pool *pgxpool.Pool, spec listSpec, ids []string) (int64, error) {
	if pool == nil {
		return 0, ErrNoDatabase
	}
	if len(ids) == 0 {
		return 0, nil
	}
	parsed := make([]string, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
		parsed = append(parsed, u.String())
	}
	cmd, err := pool.Exec(ctx, spec.deleteSQL(), parsed)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
