package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Policy is the authorization a route is documented to have. Only
// PolicyNone matches what the handler actually does.
type Policy string

const (
	PolicyNone               Policy = "none"
	PolicyOwnerOnlyUnchecked Policy = "ownerOnly-but-unchecked"
	PolicyRoleGatedUnchecked Policy = "roleGated-but-unchecked"
)

// QueryPath says how a route reaches the store.
type QueryPath string

const (
	QueryNone          QueryPath = "none"
	QueryParameterized QueryPath = "parameterized"
	QueryRaw           QueryPath = "raw"
)

type Route struct {
	Method  string
	Pattern string
	Name    string
	Policy  Policy
	Query   QueryPath
	handler func(*Server, http.ResponseWriter, *http.Request)
}

// Routes is the full route table.
func Routes() []Route {
	return []Route{
		{http.MethodPost, "/api/register", "register", PolicyNone, QueryParameterized, (*Server).handleRegister},
		{http.MethodPost, "/api/login", "login", PolicyNone, QueryParameterized, (*Server).handleLogin},
		{http.MethodPost, "/api/legacy-login", "legacy-login", PolicyNone, QueryRaw, (*Server).handleLegacyLogin},
		{http.MethodPost, "/api/search", "search", PolicyNone, QueryRaw, (*Server).handleSearch},
		{http.MethodGet, "/api/user/profile/{id}", "profile", PolicyOwnerOnlyUnchecked, QueryParameterized, (*Server).handleProfile},
		{http.MethodGet, "/api/user/sensitive/{id}", "sensitive-data", PolicyOwnerOnlyUnchecked, QueryParameterized, (*Server).handleSensitive},
		{http.MethodGet, "/api/user/notes/{id}", "notes", PolicyOwnerOnlyUnchecked, QueryParameterized, (*Server).handleNotes},
		{http.MethodGet, "/api/admin/users", "admin-list", PolicyRoleGatedUnchecked, QueryParameterized, (*Server).handleAdminUsers},
		{http.MethodGet, "/api/admin/stats", "admin-stats", PolicyRoleGatedUnchecked, QueryParameterized, (*Server).handleAdminStats},
		{http.MethodGet, "/.env", "env-disclosure", PolicyNone, QueryNone, (*Server).handleEnv},
		{http.MethodGet, "/package.json", "manifest-disclosure", PolicyNone, QueryNone, (*Server).handleManifest},
		{http.MethodPost, "/api/upload", "upload", PolicyNone, QueryNone, (*Server).handleUpload},
		{http.MethodGet, "/api/fetch-url", "url-fetch", PolicyNone, QueryNone, (*Server).handleFetch},
		{http.MethodGet, "/uploads/*", "uploads", PolicyNone, QueryNone, (*Server).handleUploads},
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.GetHead)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(detachContext)

	for _, rt := range Routes() {
		h := rt.handler
		r.Method(rt.Method, rt.Pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			h(s, w, req)
		}))
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))
}
