// Package handler содержит HTTP-обработчики консоли кондитерской.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/flora-console/internal/access"
	"github.com/mmeshcher/flora-console/internal/api"
	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/middleware"
	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/refill"
	"github.com/mmeshcher/flora-console/internal/service"
	"github.com/mmeshcher/flora-console/internal/session"
	"github.com/mmeshcher/flora-console/internal/validation"
	"github.com/mmeshcher/flora-console/internal/workflow"
)

// Service определяет контракт сценариев, используемых HTTP-обработчиками.
type Service interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)

	OrdersBoard(ctx context.Context, f workflow.Filter) (*service.Board, error)
	Order(ctx context.Context, id int64) (*service.OrderView, error)
	CreateOrder(ctx context.Context, f model.OrderForm) (*model.Order, error)
	UpdateOrder(ctx context.Context, id int64, f model.OrderForm) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	TransitionOrder(ctx context.Context, id int64, target model.OrderStatus) (*service.OrderView, error)

	RefillBoard(ctx context.Context, f workflow.Filter) ([]service.OrderView, error)
	RefillDetail(ctx context.Context, orderID int64) (*service.RefillDetail, error)
	BuildCart(ctx context.Context, orderID int64, f model.RefillForm) (*refill.Cart, error)
	SubmitRefill(ctx context.Context, orderID int64, cart *refill.Cart) (*service.RefillDetail, error)
	UpdateRefillLine(ctx context.Context, lineID int64, f model.RefillLineForm) error
	DeleteRefillLine(ctx context.Context, lineID int64) error

	Products(ctx context.Context, includeInactive bool) ([]model.Product, error)
	Catalog(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, f model.ProductForm) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, f model.ProductForm) (*model.Product, error)
	DeactivateProduct(ctx context.Context, id int64) error

	Sales(ctx context.Context) ([]model.Sale, error)
	Sale(ctx context.Context, id int64) (*model.SaleDetail, error)
	CreateSale(ctx context.Context, f model.SaleForm) (*model.Sale, error)
	CancelSale(ctx context.Context, id int64) error

	Users(ctx context.Context) (*service.UsersBoard, error)
	User(ctx context.Context, id int64) (*model.User, error)
	CreateUser(ctx context.Context, f model.UserForm) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, f model.UserForm) (*model.User, error)
	DeactivateUser(ctx context.Context, id int64) error
	ReactivateUser(ctx context.Context, id int64) error

	ReportRange(start, end calendar.Date, branchID int64) (api.ReportRange, error)
	Reports(ctx context.Context, r api.ReportRange) (*service.Reports, error)
	ExportReports(ctx context.Context, r api.ReportRange, w io.Writer) error
}

// Sessions открывает и закрывает сеансы операторов.
type Sessions interface {
	Login(ctx context.Context, token string) (*session.Session, error)
	Logout(ctx context.Context, id string) error
}

// Handler реализует HTTP-обработчики консоли.
type Handler struct {
	service        Service
	sessions       Sessions
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, sessions Sessions, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		sessions:       sessions,
		logger:         logger,
		authMiddleware: auth,
	}
}

type meResponse struct {
	Role        model.Role        `json:"role"`
	Menu        []access.MenuItem `json:"menu"`
	Permissions []access.Action   `json:"permissions"`
}

func newMeResponse(role model.Role) meResponse {
	return meResponse{Role: role, Menu: access.Menu(role), Permissions: access.Permissions(role)}
}

// Login обменивает учётные данные на токен API, открывает сеанс и устанавливает cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !h.decode(w, r, &creds) {
		return
	}

	token, err := h.service.Login(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	s, err := h.sessions.Login(r.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrInvalidToken) || errors.Is(err, session.ErrExpired) {
			h.logger.Warn("api issued unusable token", zap.Error(err))
			writeMessage(w, http.StatusBadGateway, api.GenericMessage)
			return
		}
		h.logger.Error("open session", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetSessionCookie(w, s)
	writeJSON(w, http.StatusOK, newMeResponse(s.Role()))
}

// Logout закрывает сеанс и удаляет cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.authMiddleware.SessionID(r); ok {
		if err := h.sessions.Logout(r.Context(), id); err != nil {
			h.logger.Error("logout", zap.Error(err))
		}
	}
	h.authMiddleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me возвращает роль текущего оператора и доступные ему разделы.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		middleware.WriteRedirect(w, http.StatusUnauthorized, "/login")
		return
	}
	writeJSON(w, http.StatusOK, newMeResponse(s.Role()))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Solicitud inválida")
		return false
	}
	return true
}

// writeError переводит ошибку сценария в HTTP-ответ.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verrs  validation.Errors
		apiErr *api.Error
	)

	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs})
	case errors.Is(err, api.ErrUnauthorized):
		h.forceLogout(w, r)
	case errors.Is(err, workflow.ErrTransitionNotAllowed):
		writeMessage(w, http.StatusConflict, "Cambio de estado no permitido")
	case errors.Is(err, service.ErrNotLarge):
		writeMessage(w, http.StatusConflict, "Solo los pedidos grandes admiten reposición")
	case errors.Is(err, service.ErrEmptyCart):
		writeMessage(w, http.StatusUnprocessableEntity, "Agregue al menos un producto")
	case errors.Is(err, refill.ErrInactiveProduct):
		writeMessage(w, http.StatusUnprocessableEntity, "El producto no está activo")
	case errors.Is(err, service.ErrProductNotFound):
		writeMessage(w, http.StatusUnprocessableEntity, "Producto no encontrado")
	case errors.Is(err, service.ErrInvalidRange):
		writeMessage(w, http.StatusBadRequest, "La fecha inicial no puede ser posterior a la final")
	case errors.As(err, &apiErr):
		writeMessage(w, apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, context.Canceled):
		// клиент ушёл, отвечать некому
	default:
		h.logger.Error("request failed", zap.Error(err), zap.String("path", r.URL.Path))
		writeMessage(w, http.StatusBadGateway, api.GenericMessage)
	}
}

// forceLogout закрывает сеанс, токен которого отверг API.
func (h *Handler) forceLogout(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok {
		s.Invalidate()
		if err := h.sessions.Logout(context.WithoutCancel(r.Context()), s.ID); err != nil {
			h.logger.Warn("force logout", zap.Error(err))
		}
	}
	h.authMiddleware.ClearSessionCookie(w)
	middleware.WriteRedirect(w, http.StatusUnauthorized, "/login")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, "Identificador inválido")
		return 0, false
	}
	return id, true
}
