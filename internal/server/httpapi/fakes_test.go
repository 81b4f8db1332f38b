package httpapi

import (
	"context"
	"io"

	"github.com/wcorp/cyberrange/internal/server/models"
)

type fakeAccounts struct {
	registerOut *models.User
	registerErr error
	loginOut    *models.LoginResult
	loginErr    error
	legacyOut   *models.LoginResult
	legacyErr   error

	gotUsername, gotEmail, gotPassword string
}

func (f *fakeAccounts) Register(_ context.Context, username, email, password string) (*models.User, error) {
	f.gotUsername, f.gotEmail, f.gotPassword = username, email, password
	return f.registerOut, f.registerErr
}

func (f *fakeAccounts) Login(_ context.Context, username, password string) (*models.LoginResult, error) {
	f.gotUsername, f.gotPassword = username, password
	return f.loginOut, f.loginErr
}

func (f *fakeAccounts) LegacyLogin(_ context.Context, username, password string) (*models.LoginResult, error) {
	f.gotUsername, f.gotPassword = username, password
	return f.legacyOut, f.legacyErr
}

type fakeRecords struct {
	profiles  map[string]*models.User
	profErr   error
	sensitive map[string][]*models.SensitiveRecord
	notes     map[string][]*models.InternalNote
	rows      []models.Row
	searchErr error
	gotQuery  string
}

func (f *fakeRecords) Profile(_ context.Context, id string) (*models.User, error) {
	if f.profErr != nil {
		return nil, f.profErr
	}
	u, ok := f.profiles[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (f *fakeRecords) Sensitive(_ context.Context, id string) ([]*models.SensitiveRecord, error) {
	if d, ok := f.sensitive[id]; ok {
		return d, nil
	}
	return []*models.SensitiveRecord{}, nil
}

func (f *fakeRecords) Notes(_ context.Context, id string) ([]*models.InternalNote, error) {
	if n, ok := f.notes[id]; ok {
		return n, nil
	}
	return []*models.InternalNote{}, nil
}

func (f *fakeRecords) Search(_ context.Context, q string) ([]models.Row, error) {
	f.gotQuery = q
	return f.rows, f.searchErr
}

type fakeAdmin struct {
	users    []*models.User
	stats    *models.Stats
	statsErr error
}

func (f *fakeAdmin) ListUsers(context.Context) ([]*models.User, error) { return f.users, nil }
func (f *fakeAdmin) Stats(context.Context) (*models.Stats, error)      { return f.stats, f.statsErr }

type fakeUploads struct {
	err error
}

func (f *fakeUploads) Save(_ context.Context, name string, r io.Reader) (*models.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	n, _ := io.Copy(io.Discard, r)
	return &models.File{Filename: "1-" + name, OriginalName: name, Size: n, Path: "/tmp/1-" + name}, nil
}

type fakeFetcher struct {
	out *models.FetchResult
	err error
}

func (f *fakeFetcher) Fetch(context.Context, string) (*models.FetchResult, error) {
	return f.out, f.err
}
