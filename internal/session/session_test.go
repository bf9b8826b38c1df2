package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/flora-console/internal/model"
)

type stubStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{tokens: make(map[string]string)}
}

func (s *stubStore) Load(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[id]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

func (s *stubStore) Save(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[id] = token
	return nil
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[id]; !ok {
		return ErrNotFound
	}
	delete(s.tokens, id)
	return nil
}

func signToken(t *testing.T, role model.Role, exp time.Time) string {
	t.Helper()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "12", ExpiresAt: jwt.NewNumericDate(exp)},
		Role:             role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("api-secret"))
	require.NoError(t, err)
	return token
}

func TestParseToken(t *testing.T) {
	now := time.Now()

	claims, err := ParseToken(signToken(t, model.RoleRefill, now.Add(time.Hour)), now)
	require.NoError(t, err)
	assert.Equal(t, model.RoleRefill, claims.Role)
	assert.Equal(t, "12", claims.Subject)

	_, err = ParseToken(signToken(t, model.RoleAdmin, now.Add(-time.Minute)), now)
	assert.ErrorIs(t, err, ErrExpired)

	_, err = ParseToken(signToken(t, "GUEST", now.Add(time.Hour)), now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("not-a-jwt", now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_LoginResumeLogout(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	m := NewManager(store)

	token := signToken(t, model.RoleSupervisor, time.Now().Add(time.Hour))
	s, err := m.Login(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSupervisor, s.Role())
	assert.Equal(t, token, store.tokens[s.ID])

	resumed, err := m.Resume(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, token, resumed.Token())
	assert.False(t, resumed.Invalidated())

	require.NoError(t, m.Logout(ctx, s.ID))
	_, err = m.Resume(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// повторный выход не ошибка
	assert.NoError(t, m.Logout(ctx, s.ID))
}

func TestManager_ResumeDropsExpired(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	m := NewManager(store)

	s, err := m.Login(ctx, signToken(t, model.RoleAdmin, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = m.Resume(ctx, s.ID)
	assert.ErrorIs(t, err, ErrExpired)
	assert.Empty(t, store.tokens)
}

func TestManager_ResumeRejectsMalformedID(t *testing.T) {
	_, err := NewManager(newStubStore()).Resume(context.Background(), "../etc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := &Session{ID: "x", token: "t", claims: &Claims{Role: model.RoleSeller}}
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Equal(t, model.RoleSeller, got.Role())

	got.Invalidate()
	assert.True(t, s.Invalidated())
}
