package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/pkg/respond"
	"gocapacity/internal/pkg/token"
)

type contextKey int

const (
	operatorClaimsKey contextKey = iota
	requestIDKey
)

// OperatorClaims são os dados do operador extraídos do JWT e anexados ao contexto.
type OperatorClaims struct {
	OperatorID string
	Role       domain.Role
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o header "Authorization: Bearer <token>" e anexa as claims ao contexto.
func NewAuthMiddleware(tokenSvc TokenService, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				respond.Error(w, r, log, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(raw)
			if err != nil {
				log.Debug("Token rejeitado.", map[string]interface{}{"error": err.Error()})
				respond.Error(w, r, log, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			ctx := context.WithValue(r.Context(), operatorClaimsKey, OperatorClaims{
				OperatorID: claims.OperatorID,
				Role:       domain.Role(claims.Role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extrai as claims anexadas por NewAuthMiddleware.
func ClaimsFromContext(ctx context.Context) (OperatorClaims, bool) {
	claims, ok := ctx.Value(operatorClaimsKey).(OperatorClaims)
	return claims, ok
}

// RequireRoles libera a requisição apenas para os papéis informados. Deve vir depois da autenticação.
func RequireRoles(log logger.Logger, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				respond.Error(w, r, log, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			if !slices.Contains(roles, claims.Role) {
				log.Warn("Acesso negado por papel.", map[string]interface{}{"operator_id": claims.OperatorID, "role": claims.Role})
				respond.Error(w, r, log, apperror.NewForbiddenError("Acesso negado. Você não tem a permissão necessária."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth anexa as claims quando há um token válido e segue sem elas quando não há header.
// Um token presente porém inválido é rejeitado.
func OptionalAuth(tokenSvc TokenService, log logger.Logger) func(http.Handler) http.Handler {
	required := NewAuthMiddleware(tokenSvc, log)
	return func(next http.Handler) http.Handler {
		withAuth := required(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			withAuth.ServeHTTP(w, r)
		})
	}
}
