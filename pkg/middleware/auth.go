package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/authenticating"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// Rotas acessíveis sem autenticação. A navegação de postos é pública; as
// contribuições e o painel exigem login.
var publicPaths = []string{
	"/healthcheck",
	"/metrics",
	"/v1/login",
	"/v1/register",
}

var publicPrefixes = []string{
	"/v1/stations",
	"/v1/leaderboard",
}

func isPublicPath(r *http.Request) bool {
	for _, path := range publicPaths {
		if r.URL.Path == path {
			return true
		}
	}

	if r.Method == http.MethodGet {
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				return true
			}
		}
	}

	return false
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if isPublicPath(r) {
				// Rota pública com token presente ainda ganha as claims no
				// contexto: a listagem usa o usuário para o filtro de favoritos
				if authHeader != "" {
					if claims, err := validateHeader(authService, authHeader); err == nil {
						ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
						r = r.WithContext(ctx)
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			claims, err := validateHeader(authService, authHeader)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validateHeader(authService authenticating.Authenticator, authHeader string) (*domain.Claims, error) {
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errors.New("bearer token is required")
	}
	return authService.ValidateToken(tokenString)
}
