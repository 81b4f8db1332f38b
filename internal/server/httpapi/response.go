package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/wcorp/cyberrange/internal/server/models"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type registerResponse struct {
	envelope
	UserID int64 `json:"userId,omitempty"`
}

type loginResponse struct {
	envelope
	User  *models.User `json:"user,omitempty"`
	Token string       `json:"token,omitempty"`
}

type searchResponse struct {
	envelope
	Results []models.Row `json:"results"`
}

type profileResponse struct {
	envelope
	User *models.User `json:"user"`
}

type sensitiveResponse struct {
	envelope
	Data []*models.SensitiveRecord `json:"data"`
}

type notesResponse struct {
	envelope
	Notes []*models.InternalNote `json:"notes"`
}

type usersResponse struct {
	envelope
	Users []*models.User `json:"users"`
}

type statsResponse struct {
	envelope
	Stats *models.Stats `json:"stats"`
}

type uploadResponse struct {
	envelope
	File *models.File `json:"file"`
}

type fetchResponse struct {
	envelope
	Code    string            `json:"code,omitempty"`
	Status  int               `json:"status,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Data    any               `json:"data,omitempty"`
}

type disclosureResponse struct {
	Message     string `json:"message"`
	Description string `json:"description"`
	Data        any    `json:"data"`
}

func ok() envelope {
	return envelope{Success: true}
}

func failed(message string, err error) envelope {
	e := envelope{Message: message}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respond writes v with status 200. Handled failures are signalled in the
// body only.
func respond(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}
