package middleware

import (
	"net/http"

	"github.com/mmeshcher/flora-console/internal/access"
	"github.com/mmeshcher/flora-console/internal/session"
)

// RequirePage пропускает запрос, только если роль сеанса может открыть страницу.
func RequirePage(page access.Page) func(http.Handler) http.Handler {
	return require(func(s *session.Session) bool {
		return access.CanVisit(s.Role(), page)
	})
}

// RequireAction пропускает запрос, только если роли сеанса доступно действие.
func RequireAction(action access.Action) func(http.Handler) http.Handler {
	return require(func(s *session.Session) bool {
		return access.Can(s.Role(), action)
	})
}

func require(allowed func(*session.Session) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok {
				WriteRedirect(w, http.StatusUnauthorized, "/login")
				return
			}
			if !allowed(s) {
				WriteRedirect(w, http.StatusForbidden, "/")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
