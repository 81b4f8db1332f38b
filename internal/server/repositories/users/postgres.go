// Package users is the parameterized account store. Every query binds its
// inputs through $n placeholders.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wcorp/cyberrange/internal/common"
	"github.com/wcorp/cyberrange/internal/dbx"
	"github.com/wcorp/cyberrange/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Exists reports whether an account already uses username or email.
func (r *PostgresRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	query :=
		`SELECT id FROM users
		 WHERE username = $1 OR email = $2
		 LIMIT 1
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, username, email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	return true, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, password, role)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.Password, user.Role).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// FindByCredentials compares the stored password verbatim.
func (r *PostgresRepository) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	query :=
		`SELECT id, username, email, role FROM users
		 WHERE username = $1 AND password = $2
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username, password).Scan(&user.ID, &user.Username, &user.Email, &user.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetProfile loads any account by id. The id is passed through as received
// so a malformed value surfaces as a driver error.
func (r *PostgresRepository) GetProfile(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, username, email, role, created_at, updated_at FROM users
		 WHERE id = $1
		 `

	user := &models.User{}
	var created, updated sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &created, &updated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if created.Valid {
		user.CreatedAt = &created.Time
	}
	if updated.Valid {
		user.UpdatedAt = &updated.Time
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username, email, role, created_at FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		var (
			u       models.User
			created sql.NullTime
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if created.Valid {
			u.CreatedAt = &created.Time
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
