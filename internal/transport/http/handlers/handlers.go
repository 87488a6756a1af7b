// Package handlers реализует REST-обработчики blog-service.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/config"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/service"
)

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	service *service.Service
	cfg     config.Config
}

func New(s *service.Service, cfg config.Config) *Handlers {
	return &Handlers{service: s, cfg: cfg}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: malformed request body", service.ErrInvalidArgument)
	}

	return nil
}
