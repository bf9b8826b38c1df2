// Package service реализует сценарии консоли поверх API кондитерской.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/mmeshcher/flora-console/internal/api"
	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/validation"
)

var (
	// ErrEmptyCart возвращается при отправке пустой корзины пополнения.
	ErrEmptyCart = errors.New("refill cart is empty")
	// ErrNotLarge возвращается при попытке пополнить заказ, который не является большим.
	ErrNotLarge = errors.New("order is not LARGE")
	// ErrProductNotFound возвращается, если товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidRange возвращается, если начало периода позже конца.
	ErrInvalidRange = errors.New("report range start is after end")
)

// API описывает вызовы REST API, используемые сервисом.
type API interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)

	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	CreateOrder(ctx context.Context, p model.OrderPayload) (*model.Order, error)
	UpdateOrder(ctx context.Context, id int64, p model.OrderPayload) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	MarkOrder(ctx context.Context, id int64, status model.OrderStatus) error

	ListOrderProducts(ctx context.Context, orderID int64) ([]model.OrderProduct, error)
	AddOrderProducts(ctx context.Context, orderID int64, req model.AddOrderProductsRequest) error
	UpdateOrderProductQuantity(ctx context.Context, lineID int64, quantity int) error
	DeleteOrderProduct(ctx context.Context, lineID int64) error

	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, p model.ProductPayload) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, p model.ProductPayload) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateSale(ctx context.Context, p model.SalePayload) (*model.Sale, error)
	ListSales(ctx context.Context) ([]model.Sale, error)
	GetSale(ctx context.Context, id int64) (*model.SaleDetail, error)
	CancelSale(ctx context.Context, id int64) error

	ListUsers(ctx context.Context) ([]model.User, error)
	ListInactiveUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	CreateUser(ctx context.Context, p model.UserPayload) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, p model.UserPayload) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ReactivateUser(ctx context.Context, id int64) error

	GeneralReport(ctx context.Context, r api.ReportRange) (*model.GeneralReport, error)
	DailyIncomeReport(ctx context.Context, r api.ReportRange) ([]model.DailyIncome, error)
}

// Service содержит сценарии консоли кондитерской.
type Service struct {
	api       API
	validator *validation.Validator
	loc       *time.Location
	now       func() time.Time
}

// NewService создаёт сервис. Календарные вычисления ведутся в часовом поясе филиала loc.
func NewService(client API, v *validation.Validator, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		api:       client,
		validator: v,
		loc:       loc,
		now:       time.Now,
	}
}

// Location возвращает часовой пояс филиала.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Login проверяет учётные данные и возвращает токен API.
func (s *Service) Login(ctx context.Context, creds model.Credentials) (string, error) {
	if err := s.validator.Credentials(&creds); err != nil {
		return "", err
	}
	return s.api.Login(ctx, creds)
}
