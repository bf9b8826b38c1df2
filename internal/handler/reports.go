package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mmeshcher/flora-console/internal/api"
	"github.com/mmeshcher/flora-console/internal/calendar"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportRange читает параметры start, end и branchId.
func (h *Handler) reportRange(w http.ResponseWriter, r *http.Request) (api.ReportRange, bool) {
	q := r.URL.Query()

	var start, end calendar.Date
	for key, dst := range map[string]*calendar.Date{"start": &start, "end": &end} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		d, err := calendar.ParseDate(v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Fecha inválida")
			return api.ReportRange{}, false
		}
		*dst = d
	}

	var branchID int64
	if v := q.Get("branchId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 0 {
			writeMessage(w, http.StatusBadRequest, "Sucursal inválida")
			return api.ReportRange{}, false
		}
		branchID = id
	}

	rng, err := h.service.ReportRange(start, end, branchID)
	if err != nil {
		h.writeError(w, r, err)
		return api.ReportRange{}, false
	}
	return rng, true
}

// GetReports возвращает сводный и дневной отчёты за период.
func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.reportRange(w, r)
	if !ok {
		return
	}

	rep, err := h.service.Reports(r.Context(), rng)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// ExportReports отдаёт отчёты периода файлом xlsx.
func (h *Handler) ExportReports(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.reportRange(w, r)
	if !ok {
		return
	}

	// книга собирается целиком, чтобы ошибка API не оборвала уже начатый ответ
	var buf bytes.Buffer
	if err := h.service.ExportReports(r.Context(), rng, &buf); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reporte_%s_%s.xlsx"`, rng.Start, rng.End))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("write report export", zap.Error(err))
	}
}
