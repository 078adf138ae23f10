package middleware

import (
	"context"
	"net/http"
	"strings"

	"cvtrack/internal/common"
	"cvtrack/internal/domain/account"
	"cvtrack/internal/http/response"
	"cvtrack/internal/security"
)

type contextKey string

const (
	ContextAccountIDKey     contextKey = "account_id"
	ContextAccountStatusKey contextKey = "account_status"
)

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate resolves the caller's account identity from the bearer
// token and stores it in the request context. Everything behind it
// trusts that identity; no credential verification happens here.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil))
			return
		}
		claims, err := m.jwt.Parse(parts[1])
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		accountID, err := common.ParseUUID(claims.AccountID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid account id", err))
			return
		}
		status := account.Status(strings.ToLower(strings.TrimSpace(claims.AccountStatus)))
		ctx := context.WithValue(r.Context(), ContextAccountIDKey, accountID)
		ctx = context.WithValue(ctx, ContextAccountStatusKey, status)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAccountStatus gates a route on the caller's account status. The
// requirement is declared per route and evaluated before the handler
// runs.
func RequireAccountStatus(required account.Status) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			status, ok := r.Context().Value(ContextAccountStatusKey).(account.Status)
			if !ok || status == "" {
				response.Error(w, common.NewError(common.CodeForbidden, "account status not resolved", nil))
				return
			}
			if status != required {
				response.Error(w, common.NewError(common.CodeForbidden, "account status does not permit this operation", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func AccountIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextAccountIDKey).(common.UUID)
	return id, ok
}

func AccountStatusFromContext(ctx context.Context) (account.Status, bool) {
	status, ok := ctx.Value(ContextAccountStatusKey).(account.Status)
	return status, ok
}
