package middleware

import (
	"log/slog"
	"net/http"

	apierrors "github.com/AkaashSamson/Devnovate-Blogs/internal/errors"
	logctx "github.com/AkaashSamson/Devnovate-Blogs/internal/pkg/log"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/service"
)

// Recover перехватывает panic, конвертирует в 500/internal и пишет
// унифицированный ответ. Детали паники не утекают на клиент —
// упавший запрос никогда не валит процесс.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logctx.From(r.Context()).
						LogAttrs(r.Context(), slog.LevelError, "panic",
							slog.String("path", r.URL.Path),
							slog.Any("reason", rec),
						)
					apierrors.WriteError(w, r, service.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
