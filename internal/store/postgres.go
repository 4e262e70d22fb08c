package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablerail/tablerail/internal/config"
	"github.com/tablerail/tablerail/internal/errors"
)

// PostgresStore implements Store against a hosted Postgres database
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool from the database configuration
// and verifies connectivity
func NewPostgresStore(ctx context.Context, cfg config.DatabaseConfig) (*PostgresStore, error) {
	if cfg.URL == "" {
		return nil, errors.New(errors.ErrTypeConfig, "database URL is not set").
			WithSuggestion("Set TABLERAIL_DATABASE_URL or DATABASE_URL in your environment").
			WithSuggestion("Add DATABASE_URL to your .env file")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeConfig, "invalid database URL")
	}

	poolCfg.MaxConns = int32(cfg.MaxConnections)
	poolCfg.MinConns = int32(cfg.MinConnections)

	if lifetime, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
		poolCfg.MaxConnLifetime = lifetime
	}

	if idle, err := time.ParseDuration(cfg.ConnMaxIdleTime); err == nil {
		poolCfg.MaxConnIdleTime = idle
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeNetwork, "unable to create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.ErrTypeNetwork, "unable to ping database")
	}

	return &PostgresStore{pool: pool}, nil
}

// SelectAll fetches every row of a table in whatever order the database
// returns them
func (s *PostgresStore) SelectAll(ctx context.Context, table string) ([]Row, error) {
	rows, err := s.pool.Query(ctx, buildSelectAll(table))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to select from %s", table)
	}

	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to scan rows from %s", table)
	}

	return result, nil
}

// SelectByID fetches a single row by primary key
func (s *PostgresStore) SelectByID(ctx context.Context, table string, id any) (Row, error) {
	rows, err := s.pool.Query(ctx, buildSelectByID(table), id)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to select from %s", table)
	}

	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to scan row from %s", table)
	}

	if len(result) == 0 {
		return nil, errors.Newf(errors.ErrTypeNotFound, "%s: no row with id %v", table, id)
	}

	return result[0], nil
}

// Insert stores a new row and returns it as the database materialized it,
// defaults and generated columns included
func (s *PostgresStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	query, args := buildInsert(table, row)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to insert into %s", table)
	}

	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to scan inserted row from %s", table)
	}

	if len(result) == 0 {
		return nil, errors.Newf(errors.ErrTypeDatabase, "%s: insert returned no row", table)
	}

	return result[0], nil
}

// UpdateByID patches a row by primary key and returns the updated row
func (s *PostgresStore) UpdateByID(ctx context.Context, table string, id any, patch Row) (Row, error) {
	query, args := buildUpdate(table, id, patch)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to update %s", table)
	}

	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to scan updated row from %s", table)
	}

	if len(result) == 0 {
		return nil, errors.Newf(errors.ErrTypeNotFound, "%s: no row with id %v", table, id)
	}

	return result[0], nil
}

// DeleteByID removes a row by primary key
func (s *PostgresStore) DeleteByID(ctx context.Context, table string, id any) error {
	tag, err := s.pool.Exec(ctx, buildDelete(table), id)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTypeDatabase, "failed to delete from %s", table)
	}

	if tag.RowsAffected() == 0 {
		return errors.Newf(errors.ErrTypeNotFound, "%s: no row with id %v", table, id)
	}

	return nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// collectRows scans a result set into Row maps keyed by column name
func collectRows(rows pgx.Rows) ([]Row, error) {
	descriptions := rows.FieldDescriptions()
	result := []Row{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(Row, len(descriptions))
		for i, desc := range descriptions {
			row[desc.Name] = values[i]
		}

		result = append(result, row)
	}

	return result, rows.Err()
}

// The allow-list is checked before any of these run, so interpolating the
// table name is safe; all values still go through bind parameters.

func buildSelectAll(table string) string {
	return fmt.Sprintf(`SELECT * FROM %s`, pgx.Identifier{table}.Sanitize())
}

func buildSelectByID(table string) string {
	return fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, pgx.Identifier{table}.Sanitize())
}

func buildDelete(table string) string {
	return fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pgx.Identifier{table}.Sanitize())
}

func buildInsert(table string, row Row) (string, []any) {
	columns := sortedColumns(row)

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))

	for i, col := range columns {
		quoted[i] = pgx.Identifier{col}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[col]
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING *`,
		pgx.Identifier{table}.Sanitize(),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))

	return query, args
}

func buildUpdate(table string, id any, patch Row) (string, []any) {
	columns := sortedColumns(patch)

	assignments := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)

	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{col}.Sanitize(), i+1)
		args = append(args, patch[col])
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING *`,
		pgx.Identifier{table}.Sanitize(),
		strings.Join(assignments, ", "),
		len(args))

	return query, args
}

// sortedColumns returns the row's column names in deterministic order, the
// primary key excluded (it is never written directly)
func sortedColumns(row Row) []string {
	columns := make([]string, 0, len(row))

	for col := range row {
		if col == "id" {
			continue
		}

		columns = append(columns, col)
	}

	sort.Strings(columns)

	return columns
}
