package services

import (
	"context"
	"database/sql"

	"github.com/wcorp/cyberrange/internal/server/models"
	"github.com/wcorp/cyberrange/internal/server/repositories/repomanager"
)

// RecordService serves per-account reads. It takes the account id from the
// request path and never compares it with the caller.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

// Profile returns the account with the given id or common.ErrorNotFound.
func (s *RecordService) Profile(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetProfile(ctx, id)
}

func (s *RecordService) Sensitive(ctx context.Context, userID string) ([]*models.SensitiveRecord, error) {
	return s.repomanager.Records(s.db).ListSensitive(ctx, userID)
}

func (s *RecordService) Notes(ctx context.Context, userID string) ([]*models.InternalNote, error) {
	return s.repomanager.Records(s.db).ListNotes(ctx, userID)
}

// Search runs the directory search through the raw query path.
func (s *RecordService) Search(ctx context.Context, q string) ([]models.Row, error) {
	return s.repomanager.Legacy(s.db).Search(ctx, q)
}
