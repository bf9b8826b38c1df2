package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	trequire "github.com/stretchr/testify/require"

	"github.com/mmeshcher/flora-console/internal/access"
	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/session"
)

func testToken(t *testing.T, role model.Role) string {
	t.Helper()
	claims := session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Role:             role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

type stubSessions struct {
	tokens    map[string]string
	loggedOut []string
}

func (s *stubSessions) Resume(ctx context.Context, id string) (*session.Session, error) {
	token, ok := s.tokens[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return session.New(id, token, time.Now())
}

func (s *stubSessions) Logout(ctx context.Context, id string) error {
	s.loggedOut = append(s.loggedOut, id)
	delete(s.tokens, id)
	return nil
}

func newTestAuth(t *testing.T, role model.Role) (*AuthMiddleware, *stubSessions, *session.Session) {
	t.Helper()
	token := testToken(t, role)
	sessions := &stubSessions{tokens: map[string]string{"sid-1": token}}
	s, err := session.New("sid-1", token, time.Now())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return NewAuthMiddleware("test-secret", sessions, nil), sessions, s
}

func sessionCookie(t *testing.T, m *AuthMiddleware, s *session.Session) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	m.SetSessionCookie(w, s)
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no cookies set by SetSessionCookie")
	}
	return cookies[0]
}

func TestAuthMiddleware_WithValidCookie(t *testing.T) {
	m, _, s := newTestAuth(t, model.RoleSupervisor)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		got, ok := session.FromContext(r.Context())
		if !ok {
			t.Fatalf("session not in context")
		}
		if got.Role() != model.RoleSupervisor {
			t.Fatalf("role from context = %s, want SUPERVISOR", got.Role())
		}
	})

	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.AddCookie(sessionCookie(t, m, s))

	m.Middleware(next).ServeHTTP(httptest.NewRecorder(), r)

	if !nextCalled {
		t.Fatalf("next handler was not called")
	}
}

func TestAuthMiddleware_WithoutCookie(t *testing.T) {
	m, _, _ := newTestAuth(t, model.RoleAdmin)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler should not be called")
	})

	w := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusUnauthorized)
	}

	var body map[string]string
	trequire.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "/login", body["redirect"])
}

func TestAuthMiddleware_TamperedCookie(t *testing.T) {
	m, _, s := newTestAuth(t, model.RoleAdmin)
	cookie := sessionCookie(t, m, s)
	cookie.Value = "sid-2" + cookie.Value[len("sid-1"):]

	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()

	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler should not be called")
	})).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_UnknownSessionClearsCookie(t *testing.T) {
	m, sessions, s := newTestAuth(t, model.RoleAdmin)
	cookie := sessionCookie(t, m, s)
	delete(sessions.tokens, s.ID)

	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()

	m.Middleware(http.NotFoundHandler()).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cleared := w.Result().Cookies()
	trequire.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestAuthMiddleware_InvalidatedSessionIsDropped(t *testing.T) {
	m, sessions, s := newTestAuth(t, model.RoleAdmin)

	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.AddCookie(sessionCookie(t, m, s))

	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ := session.FromContext(r.Context())
		got.Invalidate()
	})).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, []string{"sid-1"}, sessions.loggedOut)
}

func TestRequirePage(t *testing.T) {
	tests := []struct {
		role model.Role
		page access.Page
		want int
	}{
		{role: model.RoleRefill, page: access.PageRefill, want: http.StatusOK},
		{role: model.RoleSeller, page: access.PageRefill, want: http.StatusForbidden},
		{role: model.RoleSupervisor, page: access.PageUsers, want: http.StatusForbidden},
		{role: model.RoleAdmin, page: access.PageReports, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.page), func(t *testing.T) {
			s, err := session.New("sid", testToken(t, tt.role), time.Now())
			trequire.NoError(t, err)

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = r.WithContext(session.WithSession(r.Context(), s))
			w := httptest.NewRecorder()

			RequirePage(tt.page)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireAction_NoSession(t *testing.T) {
	w := httptest.NewRecorder()
	RequireAction(access.ActionRefillEdit)(http.NotFoundHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
