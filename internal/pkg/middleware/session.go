package middleware

import (
	"context"
	"net/http"

	"ctrlshirt/internal/session"
)

// SessionHeader carrega o id da sessão da loja em requisições e respostas.
const SessionHeader = "X-Session-ID"

// SessionRegistry é o contrato do registro de sessões usado pelo middleware.
type SessionRegistry interface {
	NewID() string
	ValidID(id string) bool
	Get(ctx context.Context, id string) *session.State
}

// NewSessionMiddleware resolve o estado da sessão pelo header X-Session-ID.
// Sem header (ou com id inválido) uma sessão nova é criada; o id vigente
// sempre volta no header da resposta.
func NewSessionMiddleware(registry SessionRegistry) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if !registry.ValidID(id) {
				id = registry.NewID()
			}
			w.Header().Set(SessionHeader, id)

			state := registry.Get(r.Context(), id)
			ctx := context.WithValue(r.Context(), SessionKey, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetSessionFromContext devolve o estado da sessão anexado pelo middleware.
func GetSessionFromContext(ctx context.Context) (*session.State, bool) {
	state, ok := ctx.Value(SessionKey).(*session.State)
	return state, ok
}
