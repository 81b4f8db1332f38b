package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcorp/cyberrange/internal/common"
	"github.com/wcorp/cyberrange/internal/filex"
	"github.com/wcorp/cyberrange/internal/logging"
	"github.com/wcorp/cyberrange/internal/server/config"
	"github.com/wcorp/cyberrange/internal/server/models"
	"github.com/wcorp/cyberrange/internal/server/repositories/repomanager"
)

// Mirror copies a stored upload to secondary storage.
type Mirror interface {
	Put(ctx context.Context, key, path string) error
}

// UploadService stores uploads on local disk under their client-supplied
// names. Size is the only thing it checks.
type UploadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	dir         string
	maxSize     int64
	mirror      Mirror
	log         logging.Logger
}

// NewUploadService constructs an UploadService. mirror may be nil.
func NewUploadService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, mirror Mirror, log logging.Logger) *UploadService {
	maxSize := cfg.MaxUploadSize
	if maxSize <= 0 {
		maxSize = config.MaxUploadSize
	}
	return &UploadService{
		db:          db,
		repomanager: m,
		dir:         cfg.UploadDir,
		maxSize:     maxSize,
		mirror:      mirror,
		log:         log,
	}
}

// StoredName is the on-disk name for an upload received at the given
// unix millisecond.
func StoredName(unixMillis int64, originalName string) string {
	return fmt.Sprintf("%d-%s", unixMillis, originalName)
}

// Save writes r to the upload directory as <unixMillis>-<originalName>.
// Content beyond the size ceiling removes the partial file and yields
// common.ErrorTooLarge. Recording the row and mirroring are best effort.
func (s *UploadService) Save(ctx context.Context, originalName string, r io.Reader) (*models.File, error) {
	if originalName == "" {
		return nil, common.ErrorNoFile
	}

	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return nil, err
	}

	name := StoredName(nowFunc().UnixMilli(), originalName)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	n, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	if n > s.maxSize {
		_ = os.Remove(path)
		return nil, common.ErrorTooLarge
	}

	file := &models.File{Filename: name, OriginalName: originalName, Size: n, Path: path}

	if _, err := s.repomanager.Files(s.db).Create(ctx, file); err != nil {
		s.log.Error(ctx, "upload row insert failed", "filename", name, "error", err)
	}

	if s.mirror != nil {
		if err := s.mirror.Put(ctx, "uploads/"+name, path); err != nil {
			s.log.Error(ctx, "upload mirror failed", "filename", name, "error", err)
		}
	}

	return file, nil
}
