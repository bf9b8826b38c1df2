package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/workflow"
)

// OrderView дополняет заказ полями, вычисленными для интерфейса.
type OrderView struct {
	model.Order
	StatusInfo   workflow.StatusInfo  `json:"status_info"`
	NextStatuses []model.OrderStatus  `json:"next_statuses"`
	Relative     calendar.RelativeDay `json:"relative_day"`
	Balance      *decimal.Decimal     `json:"balance,omitempty"`
}

// Board содержит доску заказов и счётчики.
type Board struct {
	Orders  []OrderView      `json:"orders"`
	Summary workflow.Summary `json:"summary"`
}

func (s *Service) view(o model.Order, now time.Time) OrderView {
	v := OrderView{
		Order:        o,
		StatusInfo:   workflow.Describe(o.Status),
		NextStatuses: workflow.NextStatuses(o.Status),
		Relative:     calendar.RelativeTo(o.DeliveryDatetime.Time, now, s.loc),
	}
	if balance, ok := o.Balance(); ok {
		v.Balance = &balance
	}
	return v
}

// OrdersBoard загружает заказы, фильтрует и упорядочивает их для общей доски.
func (s *Service) OrdersBoard(ctx context.Context, f workflow.Filter) (*Board, error) {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sorted := workflow.SortForBoard(f.Apply(orders, s.loc), now, s.loc)

	board := &Board{Orders: make([]OrderView, 0, len(sorted)), Summary: workflow.Summarize(sorted)}
	for _, o := range sorted {
		board.Orders = append(board.Orders, s.view(o, now))
	}
	return board, nil
}

// Order возвращает заказ по идентификатору.
func (s *Service) Order(ctx context.Context, id int64) (*OrderView, error) {
	o, err := s.api.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(*o, s.now())
	return &v, nil
}

// CreateOrder проверяет форму и создаёт заказ.
func (s *Service) CreateOrder(ctx context.Context, f model.OrderForm) (*model.Order, error) {
	p, err := s.orderPayload(&f)
	if err != nil {
		return nil, err
	}
	return s.api.CreateOrder(ctx, p)
}

// UpdateOrder проверяет форму и изменяет заказ.
func (s *Service) UpdateOrder(ctx context.Context, id int64, f model.OrderForm) (*model.Order, error) {
	p, err := s.orderPayload(&f)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateOrder(ctx, id, p)
}

// DeleteOrder удаляет заказ.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.api.DeleteOrder(ctx, id)
}

// TransitionOrder переводит заказ в статус target. Переход проверяется по текущему статусу из API,
// недопустимый отклоняется без PATCH.
func (s *Service) TransitionOrder(ctx context.Context, id int64, target model.OrderStatus) (*OrderView, error) {
	o, err := s.api.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := workflow.CheckTransition(o.Status, target); err != nil {
		return nil, fmt.Errorf("order %d: %w", id, err)
	}

	if err := s.api.MarkOrder(ctx, id, target); err != nil {
		return nil, err
	}

	return s.Order(ctx, id)
}

// orderPayload проверяет форму и переводит её в тело запроса.
// Время доставки вводится в часовом поясе филиала и отправляется в UTC.
func (s *Service) orderPayload(f *model.OrderForm) (model.OrderPayload, error) {
	if err := s.validator.Order(f); err != nil {
		return model.OrderPayload{}, err
	}

	at, err := calendar.ParseDateTime(f.DeliveryDatetime, s.loc)
	if err != nil {
		return model.OrderPayload{}, fmt.Errorf("parse delivery datetime: %w", err)
	}

	p := model.OrderPayload{
		Type:             f.Type,
		DeliveryDatetime: at.UTC().Format(time.RFC3339),
		CustomerName:     f.CustomerName,
		CustomerCI:       f.CustomerCI,
		Phone:            f.Phone,
		Color:            f.Color,
		Pieces:           f.Pieces,
		Specifications:   f.Specifications,
		Advance:          decimal.NewFromFloat(f.Advance),
		Event:            f.Event,
		Warranty:         f.Warranty,
	}
	if f.Price != nil {
		price := decimal.NewFromFloat(*f.Price)
		p.Price = &price
	}
	return p, nil
}
