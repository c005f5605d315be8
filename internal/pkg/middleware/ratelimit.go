package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
)

// RateLimiter limita requisições por IP em janelas fixas, contando no
// backend chave-valor (Redis ou memória). Falha do contador não bloqueia o tráfego.
func RateLimiter(counter kvstore.Counter, keyPrefix string, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := keyPrefix + "rate-limit:" + ip

			count, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				log.Warn("Falha no contador de rate limit; liberando requisição.", map[string]interface{}{"ip": ip, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if int(count) > limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				httpx.Error(w, r, log, apperror.NewTooManyRequestsError("Limite de requisições excedido."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
