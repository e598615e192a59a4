package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/domain"
)

// TableSpec describes a table keyed by a single text column.
type TableSpec struct {
	Table     string
	KeyColumn string
	// Entity names the record in NotFound and Duplicate errors.
	Entity string
	// SearchColumns are matched with ILIKE by ListFilter.Search.
	SearchColumns []string
	// ItemColumn and CounterpartyColumn back ListFilter.ItemCode and
	// ListFilter.Counterparty. Empty disables the filter.
	ItemColumn         string
	CounterpartyColumn string
	// DefaultOrder applies when ListFilter.OrderBy is empty.
	DefaultOrder string
}

// KeyedRepo provides CRUD over one table whose rows scan into T.
// Concrete repositories embed it and add their own queries.
type KeyedRepo[T any] struct {
	txm        *TxManager
	spec       TableSpec
	selectCols []string
	newFn      func() T
}

// NewKeyedRepo creates a repository over spec. Columns are taken from the
// "db" tags of the row type.
func NewKeyedRepo[T any](txm *TxManager, spec TableSpec, selectCols []string, newFn func() T) *KeyedRepo[T] {
	return &KeyedRepo[T]{txm: txm, spec: spec, selectCols: selectCols, newFn: newFn}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *KeyedRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the transaction in ctx or the pool.
func (r *KeyedRepo[T]) Querier(ctx context.Context) Querier {
	return r.txm.GetQuerier(ctx)
}

// Columns returns the selected columns.
func (r *KeyedRepo[T]) Columns() []string {
	return r.selectCols
}

// BaseSelect selects every column from the table.
func (r *KeyedRepo[T]) BaseSelect() squirrel.SelectBuilder {
	return r.Builder().Select(r.selectCols...).From(r.spec.Table)
}

// Insert writes entity using its "db" tags. A key collision yields a Duplicate error.
func (r *KeyedRepo[T]) Insert(ctx context.Context, entity T) error {
	data := Pick(StructToMap(entity), r.selectCols)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in %s", r.spec.Entity)
	}

	sql, args, err := r.Builder().Insert(r.spec.Table).SetMap(data).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate(r.spec.Entity, r.spec.KeyColumn, fmt.Sprint(data[r.spec.KeyColumn])).
				WithCause(err)
		}
		if IsCheckViolation(err) {
			return apperror.NewIntegrity("row violates a table constraint").
				WithDetail("entity", r.spec.Entity).
				WithCause(err)
		}
		return apperror.NewDatabase("insert "+r.spec.Table, err)
	}
	return nil
}

// GetByKey loads one row or returns NotFound.
func (r *KeyedRepo[T]) GetByKey(ctx context.Context, key string) (T, error) {
	return r.get(ctx, key, false)
}

// GetByKeyForUpdate loads one row and locks it until the transaction ends.
func (r *KeyedRepo[T]) GetByKeyForUpdate(ctx context.Context, key string) (T, error) {
	return r.get(ctx, key, true)
}

func (r *KeyedRepo[T]) get(ctx context.Context, key string, lock bool) (T, error) {
	entity := r.newFn()

	q := r.BaseSelect().
		Where(squirrel.Eq{r.spec.KeyColumn: key}).
		Limit(1)
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.spec.Entity, key)
		}
		return entity, apperror.NewDatabase("get "+r.spec.Table, err)
	}
	return entity, nil
}

// ExistsByKey checks for a row with the given key.
func (r *KeyedRepo[T]) ExistsByKey(ctx context.Context, key string) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From(r.spec.Table).
		Where(squirrel.Eq{r.spec.KeyColumn: key}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewDatabase("exists "+r.spec.Table, err)
	}
	return true, nil
}

// UpdateColumns sets the given columns on the row with key.
// Returns NotFound when no row matches.
func (r *KeyedRepo[T]) UpdateColumns(ctx context.Context, key string, set map[string]any) error {
	if len(set) == 0 {
		return nil
	}

	sql, args, err := r.Builder().
		Update(r.spec.Table).
		SetMap(set).
		Where(squirrel.Eq{r.spec.KeyColumn: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if IsCheckViolation(err) {
			return apperror.NewIntegrity("row violates a table constraint").
				WithDetail("entity", r.spec.Entity).
				WithCause(err)
		}
		return apperror.NewDatabase("update "+r.spec.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.spec.Entity, key)
	}
	return nil
}

// DeleteByKey removes the row with key. Returns NotFound when no row matches.
func (r *KeyedRepo[T]) DeleteByKey(ctx context.Context, key string) error {
	sql, args, err := r.Builder().
		Delete(r.spec.Table).
		Where(squirrel.Eq{r.spec.KeyColumn: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase("delete "+r.spec.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.spec.Entity, key)
	}
	return nil
}

// Select runs q and scans every row.
func (r *KeyedRepo[T]) Select(ctx context.Context, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	out := make([]T, 0)
	if err := pgxscan.Select(ctx, r.Querier(ctx), &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase("select "+r.spec.Table, err)
	}
	return out, nil
}

// FilteredSelect applies the search and key filters of filter to the base select.
func (r *KeyedRepo[T]) FilteredSelect(filter domain.ListFilter) squirrel.SelectBuilder {
	q := r.BaseSelect()

	if s := strings.TrimSpace(filter.Search); s != "" && len(r.spec.SearchColumns) > 0 {
		pattern := "%" + s + "%"
		or := make(squirrel.Or, 0, len(r.spec.SearchColumns))
		for _, col := range r.spec.SearchColumns {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}
	if filter.ItemCode != "" && r.spec.ItemColumn != "" {
		q = q.Where(squirrel.Eq{r.spec.ItemColumn: filter.ItemCode})
	}
	if filter.Counterparty != "" && r.spec.CounterpartyColumn != "" {
		q = q.Where(squirrel.Eq{r.spec.CounterpartyColumn: filter.Counterparty})
	}
	return q
}

// List returns one page of rows matching filter with the total match count.
func (r *KeyedRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	filter = filter.Normalize()
	result := domain.ListResult[T]{
		Items:  make([]T, 0),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}

	q := r.FilteredSelect(filter)

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, apperror.NewDatabase("count "+r.spec.Table, err)
	}

	q = q.OrderBy(orderBy).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	items, err := r.Select(ctx, q)
	if err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}

// parseOrderBy accepts "column", "+column" or "-column" for known columns.
func (r *KeyedRepo[T]) parseOrderBy(orderBy string) (string, error) {
	if strings.TrimSpace(orderBy) == "" {
		if r.spec.DefaultOrder != "" {
			return r.spec.DefaultOrder, nil
		}
		return r.spec.KeyColumn + " ASC", nil
	}

	direction := "ASC"
	field := strings.TrimSpace(orderBy)
	if strings.HasPrefix(field, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(field, "-")
	} else {
		field = strings.TrimPrefix(field, "+")
	}

	for _, col := range r.selectCols {
		if col == field {
			return field + " " + direction, nil
		}
	}
	return "", apperror.NewValidation("invalid orderBy").
		WithDetail("orderBy", orderBy).
		WithDetail("field", field)
}
