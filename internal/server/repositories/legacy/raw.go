// Package legacy is the raw query path kept for the legacy login and the
// directory search. Input is spliced into the SQL text unescaped, so the
// caller controls the statement.
package legacy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wcorp/cyberrange/internal/common"
	"github.com/wcorp/cyberrange/internal/dbx"
	"github.com/wcorp/cyberrange/internal/server/models"
)

type RawRepository struct {
	db dbx.DBTX
}

func NewRawRepository(db dbx.DBTX) *RawRepository {
	return &RawRepository{db: db}
}

func credentialsQuery(username, password string) string {
	return "SELECT * FROM users WHERE username = '" + username + "' AND password = '" + password + "'"
}

func searchQuery(q string) string {
	return "SELECT * FROM users WHERE username LIKE '%" + q + "%' OR email LIKE '%" + q + "%'"
}

// FindByCredentials returns the first row the concatenated statement yields,
// or common.ErrorNotFound when it yields none.
func (r *RawRepository) FindByCredentials(ctx context.Context, username, password string) (models.Row, error) {
	rows, err := r.query(ctx, credentialsQuery(username, password))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.ErrorNotFound
	}
	return rows[0], nil
}

// Search returns every row the statement yields, with all selected columns.
func (r *RawRepository) Search(ctx context.Context, q string) ([]models.Row, error) {
	return r.query(ctx, searchQuery(q))
}

// Driver errors are returned unwrapped; their text goes to the client as is.
func (r *RawRepository) query(ctx context.Context, query string) ([]models.Row, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]models.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []models.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		row := make(models.Row, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
