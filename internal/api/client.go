// Package api предоставляет клиент REST API кондитерской.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmeshcher/flora-console/internal/session"
)

// GenericMessage показывается пользователю, если API не вернул текст ошибки.
const GenericMessage = "Error al procesar la solicitud"

// ErrUnauthorized возвращается, когда API отверг токен. Сеанс при этом помечается завершённым.
var ErrUnauthorized = errors.New("unauthorized")

// Error описывает неуспешный ответ API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client инкапсулирует HTTP-взаимодействие с API кондитерской.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент API по указанному адресу.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimRight(baseURL, "/")
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do выполняет запрос. Токен берётся из сеанса в контексте, тело и ответ кодируются в JSON.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("api client not configured")
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	sess, hasSession := session.FromContext(ctx)
	if hasSession {
		req.Header.Set("Authorization", "Bearer "+sess.Token())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if hasSession {
			sess.Invalidate()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{StatusCode: resp.StatusCode, Message: extractMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// extractMessage достаёт текст ошибки из полей message или error тела ответа.
func extractMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return GenericMessage
	}

	switch {
	case strings.TrimSpace(body.Message) != "":
		return body.Message
	case strings.TrimSpace(body.Error) != "":
		return body.Error
	default:
		return GenericMessage
	}
}

// Message возвращает текст для пользователя по ошибке вызова API.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return GenericMessage
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
