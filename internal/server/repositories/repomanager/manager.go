package repomanager

import (
	"context"
	"database/sql"

	"github.com/wcorp/cyberrange/internal/dbx"
	"github.com/wcorp/cyberrange/internal/server/repositories/files"
	"github.com/wcorp/cyberrange/internal/server/repositories/legacy"
	"github.com/wcorp/cyberrange/internal/server/repositories/records"
	"github.com/wcorp/cyberrange/internal/server/repositories/sessions"
	"github.com/wcorp/cyberrange/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Records(db dbx.DBTX) records.Repository
	Files(db dbx.DBTX) files.Repository
	Legacy(db dbx.DBTX) legacy.Repository
}
