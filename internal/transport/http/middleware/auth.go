package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/config"
	logctx "github.com/AkaashSamson/Devnovate-Blogs/internal/pkg/log"
)

// TokenValidator проверяет access-токен и возвращает идентификатор пользователя.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

type actorKey struct{}

// ActorFrom возвращает идентификатор аутентифицированного пользователя
// из контекста запроса или uuid.Nil для анонимного запроса.
func ActorFrom(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// Auth извлекает access-токен из запроса в соответствии с настройкой
// транспорта (cookie или Authorization: Bearer), валидирует его и кладёт
// идентификатор пользователя в контекст.
//
// Мидлвар не отклоняет запросы: невалидный или отсутствующий токен означает
// анонимный запрос, а решение об обязательной аутентификации принимает
// сервисный слой по конкретной операции.
func Auth(v TokenValidator, cfg config.AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cfg)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := v.ValidateToken(token)
			if err != nil {
				// Протухший или битый токен — продолжаем как аноним.
				logctx.From(r.Context()).
					LogAttrs(r.Context(), slog.LevelDebug, "token_rejected",
						slog.String("reason", err.Error()),
					)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request, cfg config.AuthConfig) string {
	if cfg.TokenTransport == config.TokenTransportCookie {
		if c, err := r.Cookie(cfg.CookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}

	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) && len(auth) > len(prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}
