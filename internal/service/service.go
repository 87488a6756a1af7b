// service содержит бизнес-логику blog-service: воркфлоу модерации,
// вовлечённость (лайки/комментарии), тренды, аккаунты и профили.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/cache"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/config"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса (включая превышение лимитов).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated — операция требует аутентификации, а актора нет.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden — актор аутентифицирован, но не авторизован (не владелец / не админ).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — статья/пользователь не найдены. Сюда же намеренно попадает
	// чтение чужой не-approved статьи: существование скрытых статей не раскрываем.
	ErrNotFound = errors.New("not found")
	// ErrConflict — действие не согласуется с текущим статусом статьи
	// (лайк/комментарий вне approved, просмотр pending-статьи вне очереди).
	ErrConflict = errors.New("conflict")
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email taken")
	// ErrInvalidCredentials — неверная пара email/пароль (единый ответ, без деталей).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — токен не прошёл проверку.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrTimeout — хранилище не уложилось в дедлайн; безопасно повторить.
	ErrTimeout = errors.New("timeout")
	// ErrUnavailable — хранилище недоступно (сетевой сбой); безопасно повторить.
	ErrUnavailable = errors.New("unavailable")
	// ErrInternal — внутренняя ошибка (сторадж/БД/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — бизнес-логика blog-service.
type Service struct {
	blogs    storage.BlogStorage
	users    storage.UserStorage
	trending cache.TrendingCache // может быть nil — тогда без кэша
	cfg      config.Config
}

// New создаёт новый экземпляр Service. trending может быть nil.
func New(blogs storage.BlogStorage, users storage.UserStorage, trending cache.TrendingCache, cfg config.Config) *Service {
	return &Service{
		blogs:    blogs,
		users:    users,
		trending: trending,
		cfg:      cfg,
	}
}

// storageFailure маппит «прочие» ошибки стораджа: истёкший дедлайн/отменённый
// контекст — ретраябельный ErrTimeout, недоступность хранилища —
// ретраябельный ErrUnavailable, остальное — ErrInternal.
func storageFailure(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrTimeout
	case errors.Is(err, storage.ErrUnavailable):
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// requireActor проверяет наличие аутентифицированного актора.
func requireActor(op string, actor uuid.UUID) error {
	if actor == uuid.Nil {
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	return nil
}

// requireAdmin резолвит актора в пользователя и проверяет признак администратора.
// Админство не зашито в токен — всегда свежий lookup по записи пользователя.
func (s *Service) requireAdmin(ctx context.Context, op string, actor uuid.UUID) (*models.User, error) {
	if actor == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	user, err := s.users.UserByID(ctx, actor)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}

		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	if !user.IsAdmin {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return user, nil
}
