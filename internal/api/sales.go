package api

import (
	"context"
	"net/http"

	"github.com/mmeshcher/flora-console/internal/model"
)

// CreateSale оформляет продажу с ценами, зафиксированными на клиенте.
func (c *Client) CreateSale(ctx context.Context, p model.SalePayload) (*model.Sale, error) {
	var s model.Sale
	if err := c.do(ctx, http.MethodPost, "/sales", nil, p, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSales возвращает продажи филиала.
func (c *Client) ListSales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := c.do(ctx, http.MethodGet, "/sales", nil, nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetSale возвращает продажу со строками.
func (c *Client) GetSale(ctx context.Context, id int64) (*model.SaleDetail, error) {
	var s model.SaleDetail
	if err := c.do(ctx, http.MethodGet, idPath("/sales/%d", id), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSale заменяет строки продажи.
func (c *Client) UpdateSale(ctx context.Context, id int64, p model.SalePayload) error {
	return c.do(ctx, http.MethodPut, idPath("/sales/%d", id), nil, p, nil)
}

// CancelSale отменяет продажу.
func (c *Client) CancelSale(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/sales/%d", id), nil, nil, nil)
}

// DeleteSaleProduct удаляет строку продажи.
func (c *Client) DeleteSaleProduct(ctx context.Context, lineID int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/sales/products/%d", lineID), nil, nil, nil)
}
