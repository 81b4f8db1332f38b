package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wcorp/cyberrange/internal/common"
	"github.com/wcorp/cyberrange/internal/dbx"
	"github.com/wcorp/cyberrange/internal/logging"
	"github.com/wcorp/cyberrange/internal/server/auth"
	"github.com/wcorp/cyberrange/internal/server/config"
	"github.com/wcorp/cyberrange/internal/server/models"
	"github.com/wcorp/cyberrange/internal/server/repositories/repomanager"
)

// UserService handles registration and both login paths.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	secret      string
	log         logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		secret:      cfg.JWTSecret,
		log:         log,
	}
}

// Register creates a user account with the password stored as given.
// A taken username or email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)
	exists, err := repo.Exists(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	user := &models.User{Username: username, Email: email, Password: password, Role: models.RoleUser}
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials through the parameterized path and records
// the issued token. Lookup and session insert share one transaction.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	var result *models.LoginResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).FindByCredentials(ctx, username, password)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return err
		}

		token := auth.IssueToken(user.ID, s.secret, nowFunc())
		if err := s.repomanager.Sessions(tx).Create(ctx, &models.Session{UserID: user.ID, Token: token}); err != nil {
			return err
		}

		result = &models.LoginResult{User: user.Public(), Token: token}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LegacyLogin authenticates through the raw query path, so the caller's
// input becomes part of the SQL. The first returned row is taken as the
// authenticated account. Driver errors are returned unwrapped.
func (s *UserService) LegacyLogin(ctx context.Context, username, password string) (*models.LoginResult, error) {
	row, err := s.repomanager.Legacy(s.db).FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	user := row.User()
	token := auth.IssueToken(row["id"], s.secret, nowFunc())

	if user.ID != 0 {
		if err := s.repomanager.Sessions(s.db).Create(ctx, &models.Session{UserID: user.ID, Token: token}); err != nil {
			s.log.Error(ctx, "legacy session insert failed", "user_id", user.ID, "error", err)
		}
	} else {
		s.log.Warn(ctx, "legacy login row has no numeric id, session not stored", "id", fmt.Sprint(row["id"]))
	}

	return &models.LoginResult{User: user, Token: token}, nil
}
