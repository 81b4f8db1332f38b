package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/wcorp/cyberrange/internal/dbx"
	"github.com/wcorp/cyberrange/internal/server/models"
	"github.com/wcorp/cyberrange/internal/server/repositories/files"
	"github.com/wcorp/cyberrange/internal/server/repositories/legacy"
	"github.com/wcorp/cyberrange/internal/server/repositories/records"
	"github.com/wcorp/cyberrange/internal/server/repositories/sessions"
	"github.com/wcorp/cyberrange/internal/server/repositories/users"
)

// --- fakes ---

type fakeUsersRepo struct {
	existsOut bool
	existsErr error

	createOut *models.User
	createErr error
	created   []*models.User

	credsOut *models.User
	credsErr error

	profileOut *models.User
	profileErr error

	listOut []*models.User
	listErr error

	count    int64
	countErr error
}

func (f *fakeUsersRepo) Exists(context.Context, string, string) (bool, error) {
	return f.existsOut, f.existsErr
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.created = append(f.created, u)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) FindByCredentials(context.Context, string, string) (*models.User, error) {
	return f.credsOut, f.credsErr
}

func (f *fakeUsersRepo) GetProfile(context.Context, string) (*models.User, error) {
	return f.profileOut, f.profileErr
}

func (f *fakeUsersRepo) List(context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) Count(context.Context) (int64, error) {
	return f.count, f.countErr
}

type fakeSessionsRepo struct {
	mu        sync.Mutex
	created   []*models.Session
	createErr error
	count     int64
	countErr  error
}

func (f *fakeSessionsRepo) Create(_ context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSessionsRepo) Count(context.Context) (int64, error) {
	return f.count, f.countErr
}

type fakeRecordsRepo struct {
	sensitive    []*models.SensitiveRecord
	sensitiveErr error
	notes        []*models.InternalNote
	notesErr     error
	gotUserID    string
}

func (f *fakeRecordsRepo) ListSensitive(_ context.Context, userID string) ([]*models.SensitiveRecord, error) {
	f.gotUserID = userID
	return f.sensitive, f.sensitiveErr
}

func (f *fakeRecordsRepo) ListNotes(_ context.Context, userID string) ([]*models.InternalNote, error) {
	f.gotUserID = userID
	return f.notes, f.notesErr
}

type fakeFilesRepo struct {
	created   []*models.File
	createErr error
	count     int64
	countErr  error
}

func (f *fakeFilesRepo) Create(_ context.Context, file *models.File) (*models.File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, file)
	return file, nil
}

func (f *fakeFilesRepo) Count(context.Context) (int64, error) {
	return f.count, f.countErr
}

type fakeLegacyRepo struct {
	row       models.Row
	rowErr    error
	rows      []models.Row
	rowsErr   error
	gotSearch string
}

func (f *fakeLegacyRepo) FindByCredentials(context.Context, string, string) (models.Row, error) {
	return f.row, f.rowErr
}

func (f *fakeLegacyRepo) Search(_ context.Context, q string) ([]models.Row, error) {
	f.gotSearch = q
	return f.rows, f.rowsErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
	r *fakeRecordsRepo
	f *fakeFilesRepo
	l *fakeLegacyRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{},
		s: &fakeSessionsRepo{},
		r: &fakeRecordsRepo{},
		f: &fakeFilesRepo{},
		l: &fakeLegacyRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository        { return m.s }
func (m *fakeRepoManager) Records(dbx.DBTX) records.Repository          { return m.r }
func (m *fakeRepoManager) Files(dbx.DBTX) files.Repository              { return m.f }
func (m *fakeRepoManager) Legacy(dbx.DBTX) legacy.Repository            { return m.l }
