package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Field pairs a column name with the value to write.
type Field struct {
	Column string
	Value  interface{}
}

// table is a generic CRUD base over a single relation. Each repository
// declares its table name, column list and row scanner explicitly; nothing is
// derived from type names at runtime.
//
// Mutations run as single statements, so each call is atomic. There is no
// optimistic locking on top: concurrent writers are last-writer-wins.
type table[E any] struct {
	pool     *pgxpool.Pool
	name     string
	columns  []string
	notFound error
	scan     func(row pgx.Row) (*E, error)
}

// getBy fetches a single row matched on one column.
func (t *table[E]) getBy(ctx context.Context, column string, value interface{}) (*E, error) {
	row := t.pool.QueryRow(ctx, selectQuery(t.name, t.columns, column), value)
	entity, err := t.scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, t.notFound
		}
		return nil, err
	}
	return entity, nil
}

// list returns rows in primary-key order. A limit of zero yields an empty
// slice; there is no stability guarantee across concurrent writes.
func (t *table[E]) list(ctx context.Context, offset, limit int) ([]E, error) {
	rows, err := t.pool.Query(ctx, listQuery(t.name, t.columns), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entities := make([]E, 0, limit)
	for rows.Next() {
		entity, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, rows.Err()
}

// insert persists the given fields and returns the stored row, including
// storage-assigned id and timestamps.
func (t *table[E]) insert(ctx context.Context, fields []Field) (*E, error) {
	row := t.pool.QueryRow(ctx, insertQuery(t.name, t.columns, fields), values(fields)...)
	return t.scan(row)
}

// update overwrites exactly the given fields plus updated_at and returns the
// stored row. An empty field list still touches updated_at.
func (t *table[E]) update(ctx context.Context, id int64, fields []Field) (*E, error) {
	args := append(values(fields), id)
	row := t.pool.QueryRow(ctx, updateQuery(t.name, t.columns, fields), args...)
	entity, err := t.scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, t.notFound
		}
		return nil, err
	}
	return entity, nil
}

// delete hard-deletes a row and returns its prior state.
func (t *table[E]) delete(ctx context.Context, id int64) (*E, error) {
	row := t.pool.QueryRow(ctx, deleteQuery(t.name, t.columns), id)
	entity, err := t.scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, t.notFound
		}
		return nil, err
	}
	return entity, nil
}

func values(fields []Field) []interface{} {
	vals := make([]interface{}, len(fields))
	for i, f := range fields {
		vals[i] = f.Value
	}
	return vals
}

func selectQuery(table string, columns []string, column string) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(columns, ", "), table, column,
	)
}

func listQuery(table string, columns []string) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY id LIMIT $1 OFFSET $2",
		strings.Join(columns, ", "), table,
	)
}

func insertQuery(table string, columns []string, fields []Field) string {
	names := make([]string, len(fields))
	placeholders := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Column
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(columns, ", "),
	)
}

func updateQuery(table string, columns []string, fields []Field) string {
	assignments := make([]string, 0, len(fields)+1)
	for i, f := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", f.Column, i+1))
	}
	assignments = append(assignments, "updated_at = NOW()")
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table,
		strings.Join(assignments, ", "),
		len(fields)+1,
		strings.Join(columns, ", "),
	)
}

func deleteQuery(table string, columns []string) string {
	return fmt.Sprintf(
		"DELETE FROM %s WHERE id = $1 RETURNING %s",
		table, strings.Join(columns, ", "),
	)
}
