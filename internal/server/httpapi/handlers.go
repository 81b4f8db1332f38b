package httpapi

import (
	"errors"
	"io"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	"github.com/wcorp/cyberrange/internal/common"
	"github.com/wcorp/cyberrange/internal/server/services"
)

// readBuildInfo is a seam for tests.
var readBuildInfo = debug.ReadBuildInfo

const (
	msgExists          = "Username or email already exists"
	msgRegisterFailed  = "Registration failed"
	msgInvalidCreds    = "Invalid credentials"
	msgLoginFailed     = "Login failed"
	msgUserNotFound    = "User not found"
	msgProfileFailed   = "Failed to get user profile"
	msgSensitiveFailed = "Failed to get sensitive data"
	msgNotesFailed     = "Failed to get internal notes"
	msgUsersFailed     = "Failed to get users"
	msgStatsFailed     = "Failed to get stats"
	msgURLRequired     = "URL parameter required"
	msgUploaded        = "File uploaded successfully"
	msgNoFile          = "No file uploaded"
	msgTooLarge        = "File too large"
	msgUploadFailed    = "Upload failed"
	msgMisconfig       = "VULNERABILITY: A05 - Security Misconfiguration"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := readFields(r)

	u, err := s.svc.Accounts.Register(ctx, f["username"], f["email"], f["password"])
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			respond(w, failed(msgExists, nil))
		case errors.Is(err, common.ErrorValidation):
			respond(w, failed(msgRegisterFailed, nil))
		default:
			s.logger.Error(ctx, "registration error", "error", err)
			respond(w, failed(msgRegisterFailed, err))
		}
		return
	}

	s.logger.Info(ctx, "Registered", "username", u.Username, "id", u.ID)
	respond(w, registerResponse{envelope: ok(), UserID: u.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := readFields(r)

	res, err := s.svc.Accounts.Login(ctx, f["username"], f["password"])
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			respond(w, failed(msgInvalidCreds, nil))
		case errors.Is(err, common.ErrorValidation):
			respond(w, failed(msgLoginFailed, nil))
		default:
			s.logger.Error(ctx, "login error", "error", err)
			respond(w, failed(msgLoginFailed, err))
		}
		return
	}

	respond(w, loginResponse{envelope: ok(), User: res.User, Token: res.Token})
}

func (s *Server) handleLegacyLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := readFields(r)

	res, err := s.svc.Accounts.LegacyLogin(ctx, f.interpolated("username"), f.interpolated("password"))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			respond(w, failed(msgInvalidCreds, nil))
			return
		}
		respond(w, envelope{Error: err.Error()})
		return
	}

	respond(w, loginResponse{envelope: ok(), User: res.User, Token: res.Token})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := readFields(r)

	rows, err := s.svc.Records.Search(ctx, f.interpolated("query"))
	if err != nil {
		respond(w, envelope{Error: err.Error()})
		return
	}

	respond(w, searchResponse{envelope: ok(), Results: rows})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := s.svc.Records.Profile(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respond(w, failed(msgUserNotFound, nil))
			return
		}
		s.logger.Error(ctx, "get user profile error", "error", err)
		respond(w, failed(msgProfileFailed, err))
		return
	}

	respond(w, profileResponse{envelope: ok(), User: u})
}

func (s *Server) handleSensitive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := s.svc.Records.Sensitive(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error(ctx, "get sensitive data error", "error", err)
		respond(w, failed(msgSensitiveFailed, err))
		return
	}

	respond(w, sensitiveResponse{envelope: ok(), Data: data})
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notes, err := s.svc.Records.Notes(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error(ctx, "get internal notes error", "error", err)
		respond(w, failed(msgNotesFailed, err))
		return
	}

	respond(w, notesResponse{envelope: ok(), Notes: notes})
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.svc.Admin.ListUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "get users error", "error", err)
		respond(w, failed(msgUsersFailed, err))
		return
	}

	respond(w, usersResponse{envelope: ok(), Users: users})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.svc.Admin.Stats(ctx)
	if err != nil {
		s.logger.Error(ctx, "get stats error", "error", err)
		respond(w, failed(msgStatsFailed, err))
		return
	}

	respond(w, statsResponse{envelope: ok(), Stats: stats})
}

func (s *Server) handleEnv(w http.ResponseWriter, r *http.Request) {
	c := s.config
	respond(w, disclosureResponse{
		Message:     msgMisconfig,
		Description: "Environment file exposed",
		Data: map[string]string{
			"NODE_ENV":    c.NodeEnv,
			"DB_HOST":     c.DBHost,
			"DB_USER":     c.DBUser,
			"DB_PASSWORD": c.DBPassword,
			"DB_NAME":     c.DBName,
			"JWT_SECRET":  c.JWTSecret,
		},
	})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	bi, ok := readBuildInfo()
	if !ok {
		writeJSON(w, http.StatusInternalServerError, envelope{Error: "Failed to read package.json"})
		return
	}

	deps := make(map[string]string, len(bi.Deps))
	for _, d := range bi.Deps {
		deps[d.Path] = d.Version
	}

	respond(w, disclosureResponse{
		Message:     msgMisconfig,
		Description: "Package.json exposed",
		Data: map[string]any{
			"name":         bi.Main.Path,
			"version":      bi.Main.Version,
			"go":           bi.GoVersion,
			"dependencies": deps,
		},
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mr, err := r.MultipartReader()
	if err != nil {
		respond(w, failed(msgNoFile, nil))
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			respond(w, failed(msgNoFile, nil))
			return
		}
		if err != nil {
			s.logger.Error(ctx, "upload error", "error", err)
			respond(w, failed(msgUploadFailed, nil))
			return
		}

		name := rawFileName(part)
		if part.FormName() != "file" || name == "" {
			_ = part.Close()
			continue
		}

		file, err := s.svc.Uploads.Save(ctx, name, part)
		_ = part.Close()
		if err != nil {
			switch {
			case errors.Is(err, common.ErrorTooLarge):
				respond(w, failed(msgTooLarge, nil))
			case errors.Is(err, common.ErrorNoFile):
				respond(w, failed(msgNoFile, nil))
			default:
				s.logger.Error(ctx, "upload error", "error", err)
				respond(w, failed(msgUploadFailed, nil))
			}
			return
		}

		s.logger.Info(ctx, "File uploaded", "filename", file.Filename, "size", file.Size)
		respond(w, uploadResponse{envelope: envelope{Success: true, Message: msgUploaded}, File: file})
		return
	}
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	target := r.URL.Query().Get("url")
	if target == "" {
		respond(w, failed(msgURLRequired, nil))
		return
	}

	res, err := s.svc.Fetcher.Fetch(ctx, target)
	if err != nil {
		var fe *services.FetchError
		if errors.As(err, &fe) {
			respond(w, fetchResponse{envelope: envelope{Error: fe.Message}, Code: fe.Code})
			return
		}
		respond(w, fetchResponse{envelope: envelope{Error: err.Error()}, Code: services.CodeNetwork})
		return
	}

	respond(w, fetchResponse{envelope: ok(), Status: res.Status, Headers: res.Headers, Data: res.Data})
}

// handleUploads serves stored uploads as static files, whatever their type.
// Directories are not listed.
func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	fs := http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(s.config.UploadDir)}))
	fs.ServeHTTP(w, r)
}

type filesOnly struct {
	http.FileSystem
}

func (d filesOnly) Open(name string) (http.File, error) {
	f, err := d.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
