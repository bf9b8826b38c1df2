package handler

import (
	"net/http"
	"net/url"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/workflow"
)

// parseFilter читает фильтр доски из параметров запроса: type, name, ci, event, date, from, to.
func parseFilter(q url.Values) (workflow.Filter, bool) {
	f := workflow.Filter{
		Type:  model.OrderType(q.Get("type")),
		Name:  q.Get("name"),
		CI:    q.Get("ci"),
		Event: q.Get("event"),
	}

	if f.Type != "" && f.Type != model.OrderTypeSmall && f.Type != model.OrderTypeLarge {
		return workflow.Filter{}, false
	}

	for key, dst := range map[string]*calendar.Date{"date": &f.On, "from": &f.From, "to": &f.To} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		d, err := calendar.ParseDate(v)
		if err != nil {
			return workflow.Filter{}, false
		}
		*dst = d
	}

	return f, true
}

// ListOrders возвращает доску заказов с учётом фильтра.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(r.URL.Query())
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Filtro inválido")
		return
	}

	board, err := h.service.OrdersBoard(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// GetOrder возвращает заказ.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	o, err := h.service.Order(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// CreateOrder создаёт заказ.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var f model.OrderForm
	if !h.decode(w, r, &f) {
		return
	}

	o, err := h.service.CreateOrder(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// UpdateOrder изменяет заказ.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var f model.OrderForm
	if !h.decode(w, r, &f) {
		return
	}

	o, err := h.service.UpdateOrder(r.Context(), id, f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// DeleteOrder удаляет заказ.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transitionRequest struct {
	Status model.OrderStatus `json:"status"`
}

// TransitionOrder переводит заказ в следующий статус или в FAILED.
func (h *Handler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req transitionRequest
	if !h.decode(w, r, &req) {
		return
	}

	o, err := h.service.TransitionOrder(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
