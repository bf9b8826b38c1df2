// Package session хранит сеанс оператора: токен API и роль из его claims.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mmeshcher/flora-console/internal/model"
)

var (
	// ErrNotFound возвращается хранилищем, если сеанса с таким идентификатором нет.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidToken возвращается, если токен не удаётся разобрать или в нём нет роли.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpired возвращается для токена с истёкшим сроком действия.
	ErrExpired = errors.New("token expired")
)

// Claims содержит полезную нагрузку токена API.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// ParseToken извлекает claims без проверки подписи: подпись проверяет API.
// Срок действия проверяется относительно now.
func ParseToken(token string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}

	return claims, nil
}

// Session хранит сеанс оператора в рамках одного запроса.
type Session struct {
	ID          string
	token       string
	claims      *Claims
	invalidated atomic.Bool
}

// Token возвращает токен API для заголовка Authorization.
func (s *Session) Token() string {
	return s.token
}

// Role возвращает роль оператора.
func (s *Session) Role() model.Role {
	return s.claims.Role
}

// Subject возвращает идентификатор оператора из токена.
func (s *Session) Subject() string {
	return s.claims.Subject
}

// ExpiresAt возвращает срок действия токена или нулевое время, если он не задан.
func (s *Session) ExpiresAt() time.Time {
	if s.claims.ExpiresAt == nil {
		return time.Time{}
	}
	return s.claims.ExpiresAt.Time
}

// Invalidate помечает сеанс как завершённый. Вызывается, когда API ответил 401.
func (s *Session) Invalidate() {
	s.invalidated.Store(true)
}

// Invalidated сообщает, что сеанс нужно закрыть.
func (s *Session) Invalidated() bool {
	return s.invalidated.Load()
}

// New собирает сеанс из токена, проверяя его claims на момент now.
func New(id, token string, now time.Time) (*Session, error) {
	claims, err := ParseToken(token, now)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, token: token, claims: claims}, nil
}

type contextKey struct{}

// WithSession кладёт сеанс в контекст.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext извлекает сеанс из контекста.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// Store хранит токены по идентификатору сеанса.
type Store interface {
	Load(ctx context.Context, id string) (string, error)
	Save(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
}

// Manager создаёт, восстанавливает и завершает сеансы.
type Manager struct {
	store Store
	now   func() time.Time
}

// NewManager создаёт менеджер сеансов поверх хранилища.
func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Login сохраняет токен, полученный от API, и открывает новый сеанс.
func (m *Manager) Login(ctx context.Context, token string) (*Session, error) {
	s, err := New(uuid.NewString(), token, m.now())
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, s.ID, token); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return s, nil
}

// Resume восстанавливает сеанс по идентификатору. Сеанс с истёкшим или битым токеном удаляется.
func (m *Manager) Resume(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	token, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	s, err := New(id, token, m.now())
	if err != nil {
		if delErr := m.store.Delete(ctx, id); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}

	return s, nil
}

// Logout удаляет сеанс. Отсутствие сеанса ошибкой не считается.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
