package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/isratemma/FinEase-Backend/internal/models"
)

// Overview handles GET /transactions/overview
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	email, ok := h.requireEmail(w, r)
	if !ok {
		return
	}
	overview, err := h.svc.Overview(r.Context(), email)
	if err != nil {
		h.respondServiceError(w, r, err, "")
		return
	}
	h.respondJSON(w, http.StatusOK, overview)
}

// ListTransactions handles GET /transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	email, ok := h.requireEmail(w, r)
	if !ok {
		return
	}
	transactions, err := h.svc.ListTransactions(r.Context(), email)
	if err != nil {
		h.respondServiceError(w, r, err, "")
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	h.respondJSON(w, http.StatusOK, transactions)
}

// CategoryTotals handles GET /transactions/category-total
func (h *Handler) CategoryTotals(w http.ResponseWriter, r *http.Request) {
	email, ok := h.requireEmail(w, r)
	if !ok {
		return
	}
	totals, err := h.svc.CategoryTotals(r.Context(), email)
	if err != nil {
		h.respondServiceError(w, r, err, "")
		return
	}
	if totals == nil {
		totals = []models.CategoryTotal{}
	}
	h.respondJSON(w, http.StatusOK, totals)
}

// GetTransaction handles GET /transactions/{id}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.GetTransaction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, r, err, "Transaction not found")
		return
	}
	h.respondJSON(w, http.StatusOK, tx)
}

// CreateTransaction handles POST /transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid data")
		return
	}
	id, err := h.svc.CreateTransaction(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err, "")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"insertedId":   id,
		"acknowledged": true,
	})
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if err := h.svc.UpdateTransaction(r.Context(), mux.Vars(r)["id"], req); err != nil {
		h.respondServiceError(w, r, err, "Transaction not found")
		return
	}
	h.respondMessage(w, http.StatusOK, "Transaction updated successfully")
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTransaction(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respondServiceError(w, r, err, "Transaction not found")
		return
	}
	h.respondMessage(w, http.StatusOK, "Transaction deleted successfully")
}
