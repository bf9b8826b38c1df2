package handler

import (
	"net/http"

	"github.com/mmeshcher/flora-console/internal/model"
)

// ListProducts возвращает каталог; inactive=true включает снятые с продажи товары.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Products(r.Context(), r.URL.Query().Get("inactive") == "true")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Catalog возвращает активные товары для продаж и пополнений.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Catalog(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// CreateProduct создаёт товар.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var f model.ProductForm
	if !h.decode(w, r, &f) {
		return
	}

	p, err := h.service.CreateProduct(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProduct изменяет товар.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var f model.ProductForm
	if !h.decode(w, r, &f) {
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), id, f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeactivateProduct снимает товар с продажи.
func (h *Handler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeactivateProduct(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSales возвращает продажи.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.Sales(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// GetSale возвращает продажу со строками.
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sale, err := h.service.Sale(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

// CreateSale оформляет продажу.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var f model.SaleForm
	if !h.decode(w, r, &f) {
		return
	}

	sale, err := h.service.CreateSale(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

// CancelSale отменяет продажу.
func (h *Handler) CancelSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.CancelSale(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

