package services

import (
	"context"
	"database/sql"

	"github.com/wcorp/cyberrange/internal/server/models"
	"github.com/wcorp/cyberrange/internal/server/repositories/repomanager"
)

// AdminService backs the admin dashboard. Callers are not checked for the
// admin role.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager) *AdminService {
	return &AdminService{db: db, repomanager: m}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

// Stats counts accounts, recorded uploads and issued sessions.
func (s *AdminService) Stats(ctx context.Context) (*models.Stats, error) {
	users, err := s.repomanager.Users(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.repomanager.Files(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.repomanager.Sessions(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Stats{TotalUsers: users, TotalFiles: files, TotalSessions: sessions}, nil
}
