package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/mmeshcher/flora-console/internal/model"
)

type loginResponse struct {
	Token string `json:"token"`
}

// Login обменивает учётные данные на токен API.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		// 401 на входе означает неверные учётные данные, а не истёкший сеанс
		if errors.Is(err, ErrUnauthorized) {
			return "", &Error{StatusCode: http.StatusUnauthorized, Message: "Credenciales inválidas"}
		}
		return "", err
	}
	if resp.Token == "" {
		return "", &Error{StatusCode: http.StatusBadGateway, Message: GenericMessage}
	}
	return resp.Token, nil
}
