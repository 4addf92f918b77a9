package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/source"
)

var identifierExpr = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open connects to a postgres or sqlite database holding CV tables.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return db, nil
}

// SQLProvider reads CV sheets from tables named after them.
type SQLProvider struct {
	db      *sql.DB
	orderBy string
	builder sq.StatementBuilderType
}

var _ source.Provider = (*SQLProvider)(nil)

// NewSQLProvider wires a sql.DB; orderBy optionally fixes the row order.
func NewSQLProvider(db *sql.DB, orderBy string) *SQLProvider {
	return &SQLProvider{
		db:      db,
		orderBy: orderBy,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Name identifies the provider inside the registry.
func (p *SQLProvider) Name() string {
	return "database"
}

// Fetch selects every row of the sheet's table, keeping the table's column order.
func (p *SQLProvider) Fetch(ctx context.Context, sheet string) (*domain.RecordSet, error) {
	if p.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	if !identifierExpr.MatchString(sheet) {
		return nil, fmt.Errorf("sheet %q is not a valid table name", sheet)
	}

	stmt := p.builder.Select("*").From(sheet)
	if p.orderBy != "" {
		if !identifierExpr.MatchString(p.orderBy) {
			return nil, fmt.Errorf("order column %q is not a valid identifier", p.orderBy)
		}
		stmt = stmt.OrderBy(p.orderBy)
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", sheet, err)
	}

	columns, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("columns of %s: %w", sheet, err)
	}

	set := domain.NewRecordSet(columns...)
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan %s: %w", sheet, err)
		}

		cells := make([]string, len(columns))
		for i, v := range raw {
			cells[i] = domain.CellString(v)
		}
		set.Append(cells...)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return set, nil
}
