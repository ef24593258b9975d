package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/isratemma/FinEase-Backend/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes builds the service router. Fixed transaction paths are registered
// before the {id} routes so "overview" never parses as an id.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Health).Methods("GET")
	r.HandleFunc("/transactions/overview", h.Overview).Methods("GET")
	r.HandleFunc("/transactions/category-total", h.CategoryTotals).Methods("GET")
	r.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	r.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	r.HandleFunc("/transactions/{id}", h.GetTransaction).Methods("GET")
	r.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	r.HandleFunc("/users/by-email", h.GetUserByEmail).Methods("GET")
	r.HandleFunc("/users", h.SaveUser).Methods("POST")
	return r
}

// Health reports that the process is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Server is running fine.."))
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("failed to encode response")
	}
}

func (h *Handler) respondMessage(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"message": msg})
}

// respondServiceError maps service sentinels to statuses. Anything unknown
// is a store failure: logged in full, reported generically.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidData):
		h.respondMessage(w, http.StatusBadRequest, "Invalid data")
	case errors.Is(err, service.ErrInvalidID):
		h.respondMessage(w, http.StatusBadRequest, "Invalid ID")
	case errors.Is(err, service.ErrNotFound):
		h.respondMessage(w, http.StatusNotFound, notFoundMsg)
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		h.respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}

// requireEmail pulls the mandatory email query parameter, writing the 400
// itself when absent.
func (h *Handler) requireEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.respondMessage(w, http.StatusBadRequest, "Email is required")
		return "", false
	}
	return email, true
}
