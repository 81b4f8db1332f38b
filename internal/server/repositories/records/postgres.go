// Package records reads the per-account sensitive data and internal notes.
package records

import (
	"context"
	"fmt"

	"github.com/wcorp/cyberrange/internal/dbx"
	"github.com/wcorp/cyberrange/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListSensitive(ctx context.Context, userID string) ([]*models.SensitiveRecord, error) {
	query := `SELECT id, user_id, data_type, data_value FROM sensitive_data
		WHERE user_id = $1 ORDER BY id
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.SensitiveRecord{}
	for rows.Next() {
		var item models.SensitiveRecord
		if err := rows.Scan(&item.ID, &item.UserID, &item.DataType, &item.DataValue); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListNotes returns every note of the account, confidential ones included.
func (r *PostgresRepository) ListNotes(ctx context.Context, userID string) ([]*models.InternalNote, error) {
	query := `SELECT id, user_id, note, is_confidential, created_at FROM internal_notes
		WHERE user_id = $1 ORDER BY id
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.InternalNote{}
	for rows.Next() {
		var item models.InternalNote
		if err := rows.Scan(&item.ID, &item.UserID, &item.Note, &item.IsConfidential, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
