package api

import (
	"context"
	"net/http"

	"github.com/mmeshcher/flora-console/internal/model"
)

// ListProducts возвращает каталог товаров.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct возвращает товар по идентификатору.
func (c *Client) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, idPath("/products/%d", id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct создаёт товар.
func (c *Client) CreateProduct(ctx context.Context, p model.ProductPayload) (*model.Product, error) {
	var res model.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateProduct изменяет товар.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p model.ProductPayload) (*model.Product, error) {
	var res model.Product
	if err := c.do(ctx, http.MethodPut, idPath("/products/%d", id), nil, p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteProduct деактивирует товар. API не удаляет запись физически.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/products/%d", id), nil, nil, nil)
}
