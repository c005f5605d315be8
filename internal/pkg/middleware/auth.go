package middleware

import (
	"context"
	"net/http"
	"strings"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/token"
)

// ContextKey é o tipo das chaves que os middlewares gravam no contexto.
// Context Keys devem ser não-exportadas e de um tipo único.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
	SessionKey
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	UserID string
	Role   domain.UserRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT e anexa as claims
// (UserID e Role) ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService, log logger.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				httpx.Error(w, r, log, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				log.Debug("Token rejeitado.", map[string]interface{}{"path": r.URL.Path, "error": err.Error()})
				httpx.Error(w, r, log, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			// 3. Anexar Claims ao Contexto
			ctx := context.WithValue(r.Context(), UserClaimsKey, UserClaims{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// PermissionMiddleware libera o recurso apenas para os papéis informados.
func PermissionMiddleware(log logger.Logger, requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 1. Tentar extrair as Claims do contexto
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				httpx.Error(w, r, log, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			// 2. Verificar Permissão (AuthZ)
			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn("Acesso negado por papel.", map[string]interface{}{"user_id": claims.UserID, "role": claims.Role, "path": r.URL.Path})
			httpx.Error(w, r, log, apperror.NewForbiddenError("Você não tem a permissão necessária."))
		}
	}
}

// RequireAdminPanel combina autenticação e os papéis que enxergam o painel (admin, manager).
func RequireAdminPanel(tokenSvc TokenService, log logger.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	auth := NewAuthMiddleware(tokenSvc, log)
	perm := PermissionMiddleware(log, domain.RoleAdmin, domain.RoleManager)
	return func(next http.HandlerFunc) http.HandlerFunc { return auth(perm(next)) }
}

// RequireSettings combina autenticação e o papel que altera configurações (admin).
func RequireSettings(tokenSvc TokenService, log logger.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	auth := NewAuthMiddleware(tokenSvc, log)
	perm := PermissionMiddleware(log, domain.RoleAdmin)
	return func(next http.HandlerFunc) http.HandlerFunc { return auth(perm(next)) }
}
