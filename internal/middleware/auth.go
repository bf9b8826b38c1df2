// Package middleware содержит HTTP middleware консоли кондитерской.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/flora-console/internal/session"
)

const (
	authCookieName = "flora_session"
	authCookieTTL  = 12 * time.Hour
)

// Sessions восстанавливает и закрывает сеансы по идентификатору из cookie.
type Sessions interface {
	Resume(ctx context.Context, id string) (*session.Session, error)
	Logout(ctx context.Context, id string) error
}

// AuthMiddleware выполняет проверку сеанса оператора по подписанному cookie.
type AuthMiddleware struct {
	secretKey []byte
	sessions  Sessions
	logger    *zap.Logger
}

// NewAuthMiddleware создаёт AuthMiddleware. Пустой секрет заменяется случайным ключом на время жизни процесса.
func NewAuthMiddleware(secret string, sessions Sessions, logger *zap.Logger) *AuthMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("flora-console-secret")
		}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthMiddleware{
		secretKey: key,
		sessions:  sessions,
		logger:    logger,
	}
}

// Middleware восстанавливает сеанс из cookie и кладёт его в контекст запроса.
// Если во время запроса API отверг токен, сеанс удаляется из хранилища.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.sessionID(r)
		if !ok {
			WriteRedirect(w, http.StatusUnauthorized, "/login")
			return
		}

		s, err := a.sessions.Resume(r.Context(), id)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) || errors.Is(err, session.ErrInvalidToken) {
				a.ClearSessionCookie(w)
				WriteRedirect(w, http.StatusUnauthorized, "/login")
				return
			}
			a.logger.Error("resume session", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))

		if s.Invalidated() {
			if err := a.sessions.Logout(context.WithoutCancel(r.Context()), s.ID); err != nil {
				a.logger.Warn("drop rejected session", zap.Error(err))
			}
		}
	})
}

func (a *AuthMiddleware) sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return "", false
	}
	return a.parseCookie(cookie.Value)
}

// SessionID возвращает идентификатор сеанса из cookie запроса, если подпись верна.
func (a *AuthMiddleware) SessionID(r *http.Request) (string, bool) {
	return a.sessionID(r)
}

// SetSessionCookie устанавливает cookie сеанса. Срок жизни cookie не превышает срок действия токена.
func (a *AuthMiddleware) SetSessionCookie(w http.ResponseWriter, s *session.Session) {
	expires := time.Now().Add(authCookieTTL)
	if exp := s.ExpiresAt(); !exp.IsZero() && exp.Before(expires) {
		expires = exp
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    a.sign(s.ID),
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie сеанса.
func (a *AuthMiddleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *AuthMiddleware) sign(id string) string {
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (a *AuthMiddleware) parseCookie(value string) (string, bool) {
	id, signature, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}

	_, expected, _ := strings.Cut(a.sign(id), ".")
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}

	return id, true
}

// WriteRedirect отвечает JSON с адресом, куда интерфейсу следует перейти.
func WriteRedirect(w http.ResponseWriter, status int, path string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"redirect": path})
}
