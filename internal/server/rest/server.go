// Package restserver exposes the translation validator HTTP API.
package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/alwaly/translation-validator/internal/errs"
	"github.com/alwaly/translation-validator/internal/model"
	"github.com/alwaly/translation-validator/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	translations service.TranslationService
	users        service.UserService
}

// New constructs a server with injected services.
func New(translations service.TranslationService, users service.UserService) *Server {
	return &Server{translations: translations, users: users}
}

// Router mounts all handlers under /api with logging and panic recovery.
func (s *Server) Router(log *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(Recover(log), Logging(log))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/translations", s.listTranslations).Methods(http.MethodGet)
	api.HandleFunc("/translations/random", s.randomTranslation).Methods(http.MethodGet)
	api.HandleFunc("/translations/import", s.importTranslations).Methods(http.MethodPost)
	api.HandleFunc("/translations/count", s.countTranslations).Methods(http.MethodGet)
	api.HandleFunc("/translations/validated", s.listValidated).Methods(http.MethodGet)
	api.HandleFunc("/translations/export", s.exportValidated).Methods(http.MethodGet)
	api.HandleFunc("/translations/{id}", s.updateTranslation).Methods(http.MethodPut)
	api.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	return r
}

func (s *Server) listTranslations(w http.ResponseWriter, r *http.Request) {
	list, err := s.translations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []model.Translation{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) listValidated(w http.ResponseWriter, r *http.Request) {
	list, err := s.translations.ListByStatus(r.Context(), model.StatusValidated)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []model.Translation{}
	}
	writeJSON(w, http.StatusOK, list)
}

// randomTranslation returns one random pending pair, or a JSON null when
// nothing is pending.
func (s *Server) randomTranslation(w http.ResponseWriter, r *http.Request) {
	t, err := s.translations.PickRandomPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) updateTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid translation ID format")
		return
	}

	// Unknown keys are rejected rather than silently dropped, so callers
	// cannot smuggle fields like lastUpdated past the allow-list.
	var upd model.TranslationUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed update payload")
		return
	}

	t, err := s.translations.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type importRequest struct {
	CSVData string `json:"csvData"`
}

type importResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) importTranslations(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed import payload")
		return
	}
	n, err := s.translations.Import(r.Context(), req.CSVData)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		Success: true,
		Message: fmt.Sprintf("Import successful. Inserted %d new translations.", n),
	})
}

func (s *Server) countTranslations(w http.ResponseWriter, r *http.Request) {
	n, empty, err := s.translations.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"isEmpty": empty, "count": n})
}

func (s *Server) exportValidated(w http.ResponseWriter, r *http.Request) {
	data, err := s.translations.ExportValidated(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=validated-translations.csv")
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []model.User{}
	}
	writeJSON(w, http.StatusOK, list)
}

// writeError maps sentinel errors to HTTP status codes. Everything not in
// the taxonomy is a plain 500; details stay server-side.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "translation not found")
	case errors.Is(err, errs.ErrInvalidArgument):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
