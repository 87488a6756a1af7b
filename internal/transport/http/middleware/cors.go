package middleware

import (
	"net/http"
	"strings"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/config"
)

// CORS реализует allow-list источников для браузерных клиентов.
// Origin сверяется с конфигурацией без wildcard: совпадение точное,
// регистронезависимое. Разрешённый запрос получает credentials-заголовки,
// preflight (OPTIONS) завершается 204 без прохода в router.
func CORS(cfg config.CORSConfig) Middleware {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
		if o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Ответ зависит от Origin — кэши обязаны это учитывать.
			w.Header().Add("Vary", "Origin")

			if origin != "" {
				key := strings.TrimRight(strings.ToLower(origin), "/")
				if _, ok := allowed[key]; ok {
					h := w.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Set("Access-Control-Allow-Credentials", "true")
					h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
