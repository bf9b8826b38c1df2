package api

import (
	"context"
	"net/http"

	"github.com/mmeshcher/flora-console/internal/model"
)

// ListUsers возвращает активных операторов.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	return c.listUsers(ctx, "/users")
}

// ListInactiveUsers возвращает деактивированных операторов.
func (c *Client) ListInactiveUsers(ctx context.Context) ([]model.User, error) {
	return c.listUsers(ctx, "/users/inactive")
}

func (c *Client) listUsers(ctx context.Context, path string) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser возвращает оператора по идентификатору.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, idPath("/users/%d", id), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser создаёт оператора.
func (c *Client) CreateUser(ctx context.Context, p model.UserPayload) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, p, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser изменяет оператора.
func (c *Client) UpdateUser(ctx context.Context, id int64, p model.UserPayload) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPut, idPath("/users/%d", id), nil, p, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser деактивирует оператора.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/users/%d", id), nil, nil, nil)
}

// ReactivateUser возвращает оператора в число активных.
func (c *Client) ReactivateUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPatch, idPath("/users/%d/reactivate", id), nil, nil, nil)
}
