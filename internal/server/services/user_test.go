package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcorp/cyberrange/internal/common"
	"github.com/wcorp/cyberrange/internal/logging"
	"github.com/wcorp/cyberrange/internal/server/auth"
	"github.com/wcorp/cyberrange/internal/server/config"
	"github.com/wcorp/cyberrange/internal/server/models"
	"github.com/wcorp/cyberrange/internal/server/repositories/repomanager"
)

// --- helpers ---

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func pinNow(t *testing.T, ts time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return ts }
	t.Cleanup(func() { nowFunc = orig })
}

func newUserService(db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	return NewUserService(db, rm, testConfig(), logging.Discard())
}

func TestRegister_Success(t *testing.T) {
	rm := newFakeRepoManager()
	rm.u.createOut = &models.User{ID: 5, Username: "eve"}
	s := newUserService(nil, rm)

	u, err := s.Register(context.Background(), "eve", "eve@x", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)

	require.Len(t, rm.u.created, 1)
	assert.Equal(t, "pw", rm.u.created[0].Password)
	assert.Equal(t, models.RoleUser, rm.u.created[0].Role)
}

func TestRegister_DuplicateIsGeneric(t *testing.T) {
	rm := newFakeRepoManager()
	rm.u.existsOut = true
	s := newUserService(nil, rm)

	_, err := s.Register(context.Background(), "admin", "new@x", "pw")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	_, err = s.Register(context.Background(), "new", "admin@wcorp.local", "pw")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Empty(t, rm.u.created)
}

func TestRegister_MissingFields(t *testing.T) {
	s := newUserService(nil, newFakeRepoManager())

	_, err := s.Register(context.Background(), "", "e@x", "pw")
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = s.Register(context.Background(), "u", "e@x", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegister_StoreError(t *testing.T) {
	rm := newFakeRepoManager()
	rm.u.existsErr = errors.New("db error: conn lost")
	s := newUserService(nil, rm)

	_, err := s.Register(context.Background(), "u", "e@x", "pw")
	assert.EqualError(t, err, "db error: conn lost")
}

const (
	credsQ   = `(?s)^SELECT\s+id,\s*username,\s*email,\s*role\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s+AND\s+password\s*=\s*\$2\s*$`
	sessionQ = `(?s)^INSERT\s+INTO\s+sessions\s*\(id,\s*user_id,\s*token\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)$`
)

func TestLogin_InsertsExactlyOneSession(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.UnixMilli(1700000000000)
	pinNow(t, now)
	want := auth.IssueToken(int64(2), "predictable_secret_key_123", now)

	mock.ExpectBegin()
	mock.ExpectQuery(credsQ).WithArgs("john.doe", "password123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "role"}).
			AddRow(int64(2), "john.doe", "john.doe@wcorp.local", "user"))
	mock.ExpectExec(sessionQ).WithArgs(sqlmock.AnyArg(), int64(2), want).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := newUserService(db, repomanager.NewPostgresRepositoryManager())
	res, err := s.Login(context.Background(), "john.doe", "password123")
	require.NoError(t, err)

	assert.Equal(t, want, res.Token)
	assert.Equal(t, int64(2), res.User.ID)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_InvalidCredentialsRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(credsQ).WithArgs("admin", "wrong").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	s := newUserService(db, repomanager.NewPostgresRepositoryManager())
	_, err = s.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_SessionInsertFailureFailsLogin(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(credsQ).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "role"}).
			AddRow(int64(1), "admin", "admin@wcorp.local", "admin"))
	mock.ExpectExec(sessionQ).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := newUserService(db, repomanager.NewPostgresRepositoryManager())
	_, err = s.Login(context.Background(), "admin", "admin123")
	assert.EqualError(t, err, "db error: disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_MissingFields(t *testing.T) {
	s := newUserService(nil, newFakeRepoManager())

	_, err := s.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestLegacyLogin_Success(t *testing.T) {
	now := time.UnixMilli(42)
	pinNow(t, now)

	rm := newFakeRepoManager()
	rm.l.row = models.Row{"id": int64(1), "username": "admin", "email": "admin@wcorp.local", "password": "admin123", "role": "admin"}
	s := newUserService(nil, rm)

	res, err := s.LegacyLogin(context.Background(), "' OR '1'='1", "' OR '1'='1")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Username)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
	assert.Empty(t, res.User.Password)
	assert.Equal(t, auth.IssueToken(1, "predictable_secret_key_123", now), res.Token)

	require.Len(t, rm.s.created, 1)
	assert.Equal(t, int64(1), rm.s.created[0].UserID)
}

func TestLegacyLogin_SessionFailureStillSucceeds(t *testing.T) {
	rm := newFakeRepoManager()
	rm.l.row = models.Row{"id": int64(3), "username": "jane.smith"}
	rm.s.createErr = errors.New("db error: down")
	s := newUserService(nil, rm)

	res, err := s.LegacyLogin(context.Background(), "jane.smith' --", "")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestLegacyLogin_NoRow(t *testing.T) {
	rm := newFakeRepoManager()
	rm.l.rowErr = common.ErrorNotFound
	s := newUserService(nil, rm)

	_, err := s.LegacyLogin(context.Background(), "admin", "x")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLegacyLogin_DriverErrorVerbatim(t *testing.T) {
	rm := newFakeRepoManager()
	rm.l.rowErr = errors.New(`ERROR: syntax error at or near "x" (SQLSTATE 42601)`)
	s := newUserService(nil, rm)

	_, err := s.LegacyLogin(context.Background(), "'x", "")
	assert.EqualError(t, err, `ERROR: syntax error at or near "x" (SQLSTATE 42601)`)
}
