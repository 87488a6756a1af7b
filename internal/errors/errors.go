// errors стандартизирует ответы об ошибках HTTP-слоя blog-service.
// На вход он принимает ошибку сервисного слоя (обёрнутый сентинел),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - стабильное тело {success:false, message} без утечки деталей.
//
// Источник истинности по маппингу: сентинелы internal/service.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/service"
)

// Response — единый формат ошибки для фронта.
// Success всегда false; Message — безопасное человекочитаемое описание;
// RequestID прокидывается из X-Request-Id, если есть (для трассировки).
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal, чтобы не послать
//     "200 OK" с телом ошибки и не замаскировать баг;
//   - не-сентинельная ошибка — 500/internal (без утечки деталей).
func ToHTTP(err error) (int, Response) {
	status, msg := mapError(err)

	return status, Response{Success: false, Message: msg}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// mapError — базовый маппинг сентинелов сервиса -> HTTP/сообщение:
//   - InvalidArgument (битые входные/лимиты) -> 400
//   - InvalidCredentials -> 400 (единый ответ входа, без деталей)
//   - Unauthenticated / InvalidToken / TokenExpired -> 401
//   - Forbidden -> 403
//   - NotFound (включая скрытые правилами видимости статьи) -> 404
//   - Conflict (действие вне допустимого статуса) / EmailTaken -> 409
//   - Unavailable (хранилище недоступно; безопасно повторить) -> 503
//   - Timeout (дедлайн стораджа; безопасно повторить) -> 504
//   - прочее -> 500/internal
func mapError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal error"
	case stderrors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid argument"
	case stderrors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, "invalid email or password"
	case stderrors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case stderrors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case stderrors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case stderrors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not found"
	case stderrors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case stderrors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict with current state"
	case stderrors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	case stderrors.Is(err, service.ErrTimeout):
		return http.StatusGatewayTimeout, "timeout, retry later"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
