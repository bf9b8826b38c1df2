package handler

import (
	"net/http"

	"github.com/mmeshcher/flora-console/internal/model"
)

// ListUsers возвращает активных и деактивированных операторов.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Users(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// GetUser возвращает оператора.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.service.User(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateUser создаёт оператора.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var f model.UserForm
	if !h.decode(w, r, &f) {
		return
	}

	u, err := h.service.CreateUser(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// UpdateUser изменяет оператора.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var f model.UserForm
	if !h.decode(w, r, &f) {
		return
	}

	u, err := h.service.UpdateUser(r.Context(), id, f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// DeactivateUser деактивирует оператора.
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeactivateUser(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReactivateUser возвращает оператора в число активных.
func (h *Handler) ReactivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.ReactivateUser(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
