package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/workflow"
)

// ListOrders возвращает все заказы филиала.
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder возвращает заказ по идентификатору.
func (c *Client) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	if err := c.do(ctx, http.MethodGet, idPath("/orders/%d", id), nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder создаёт заказ.
func (c *Client) CreateOrder(ctx context.Context, p model.OrderPayload) (*model.Order, error) {
	var o model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, p, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOrder изменяет заказ.
func (c *Client) UpdateOrder(ctx context.Context, id int64, p model.OrderPayload) (*model.Order, error) {
	var o model.Order
	if err := c.do(ctx, http.MethodPut, idPath("/orders/%d", id), nil, p, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteOrder удаляет заказ.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/orders/%d", id), nil, nil, nil)
}

// MarkOrder переводит заказ в статус отдельным PATCH-запросом.
func (c *Client) MarkOrder(ctx context.Context, id int64, status model.OrderStatus) error {
	segment, ok := workflow.TransitionPath(status)
	if !ok {
		return fmt.Errorf("%w: no endpoint for %s", workflow.ErrTransitionNotAllowed, status)
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/%s", id, segment), nil, nil, nil)
}

// ListOrderProducts возвращает продукты, выделенные на заказ.
func (c *Client) ListOrderProducts(ctx context.Context, orderID int64) ([]model.OrderProduct, error) {
	var lines []model.OrderProduct
	if err := c.do(ctx, http.MethodGet, idPath("/orders/%d/products", orderID), nil, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddOrderProducts добавляет продукты в заказ одним пакетом.
func (c *Client) AddOrderProducts(ctx context.Context, orderID int64, req model.AddOrderProductsRequest) error {
	return c.do(ctx, http.MethodPost, idPath("/orders/%d/products", orderID), nil, req, nil)
}

// UpdateOrderProductQuantity меняет количество в строке заказа.
func (c *Client) UpdateOrderProductQuantity(ctx context.Context, lineID int64, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return c.do(ctx, http.MethodPut, idPath("/orders/products/%d", lineID), nil, body, nil)
}

// DeleteOrderProduct удаляет строку продукта из заказа.
func (c *Client) DeleteOrderProduct(ctx context.Context, lineID int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/orders/products/%d", lineID), nil, nil, nil)
}
