package handler

import (
	"encoding/json"
	"net/http"

	"github.com/isratemma/FinEase-Backend/internal/models"
)

// GetUserByEmail handles GET /users/by-email
func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email, ok := h.requireEmail(w, r)
	if !ok {
		return
	}
	profile, err := h.svc.GetUserByEmail(r.Context(), email)
	if err != nil {
		h.respondServiceError(w, r, err, "User not found")
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// SaveUser handles POST /users, an upsert keyed on email.
func (h *Handler) SaveUser(w http.ResponseWriter, r *http.Request) {
	var req models.SaveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid data")
		return
	}
	id, created, err := h.svc.SaveUser(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err, "")
		return
	}
	msg := "User updated successfully"
	if created {
		msg = "User created successfully"
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"message":    msg,
		"insertedId": id,
	})
}
