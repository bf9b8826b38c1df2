package handler

import (
	"net/http"

	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/service"
)

// ListRefill возвращает большие заказы для пополнения.
func (h *Handler) ListRefill(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(r.URL.Query())
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Filtro inválido")
		return
	}

	orders, err := h.service.RefillBoard(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetRefill возвращает большой заказ с выделенными продуктами.
func (h *Handler) GetRefill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.service.RefillDetail(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// PreviewCart собирает корзину по выбору и возвращает её итоги без отправки в API.
func (h *Handler) PreviewCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var f model.RefillForm
	if !h.decode(w, r, &f) {
		return
	}

	cart, err := h.service.BuildCart(r.Context(), id, f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, service.NewCartView(cart))
}

// SubmitRefill добавляет выбранные продукты в заказ одним пакетом.
func (h *Handler) SubmitRefill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var f model.RefillForm
	if !h.decode(w, r, &f) {
		return
	}

	cart, err := h.service.BuildCart(r.Context(), id, f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	detail, err := h.service.SubmitRefill(r.Context(), id, cart)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// UpdateRefillLine меняет количество продукта в заказе.
func (h *Handler) UpdateRefillLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := pathID(w, r, "lineID")
	if !ok {
		return
	}

	var f model.RefillLineForm
	if !h.decode(w, r, &f) {
		return
	}

	if err := h.service.UpdateRefillLine(r.Context(), lineID, f); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteRefillLine удаляет продукт из заказа.
func (h *Handler) DeleteRefillLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := pathID(w, r, "lineID")
	if !ok {
		return
	}

	if err := h.service.DeleteRefillLine(r.Context(), lineID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
