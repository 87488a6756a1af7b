package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности (email пользователя).
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnavailable — хранилище недоступно (сетевой сбой, разрыв соединения).
	ErrUnavailable = errors.New("storage unavailable")
)

// UpdateBlogFields — частичное обновление контентных полей статьи.
// nil-поле означает «не трогать». ResetStatus=true дополнительно
// возвращает статью в pending (правка контента владельцем).
type UpdateBlogFields struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Tags          *[]string
	FeaturedImage *string
	ResetStatus   bool
}

// UpdateUserFields — частичное обновление профиля пользователя.
type UpdateUserFields struct {
	Name     *string
	Bio      *string
	Location *string
	Website  *string
}

// BlogStorage описывает операции над статьями.
//
// Контракт по конкурентности: ToggleLike, AppendComment и IncrementViews
// обязаны быть атомарными в пределах одного документа (одиночный
// conditional update на стороне БД, без read-modify-write в памяти).
type BlogStorage interface {
	// SaveBlog создаёт статью: генерирует ID, проставляет created_at/updated_at.
	SaveBlog(ctx context.Context, blog models.Blog) (*models.Blog, error)

	// BlogByID возвращает статью по идентификатору.
	// Некорректный формат id трактуется как «нет такой записи» (ErrNotFound).
	BlogByID(ctx context.Context, id string) (*models.Blog, error)

	// BlogsByAuthor возвращает все статьи автора, сначала новые (created_at DESC).
	BlogsByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Blog, error)

	// BlogsByStatus возвращает статьи в заданном статусе, отсортированные по
	// полю свежести из opts (created_at либо published_at).
	BlogsByStatus(ctx context.Context, status models.Status, opts models.ListOptions) ([]models.Blog, error)

	// UpdateBlog применяет частичное обновление и возвращает обновлённый документ.
	// Всегда обновляет updated_at. Если запись не найдена — ErrNotFound.
	UpdateBlog(ctx context.Context, id string, upd UpdateBlogFields) (*models.Blog, error)

	// SetStatus переводит статью в новый статус; publishedAt != nil дополнительно
	// выставляет published_at (момент approve). Если запись не найдена — ErrNotFound.
	SetStatus(ctx context.Context, id string, status models.Status, publishedAt *time.Time) (*models.Blog, error)

	// DeleteBlog безусловно удаляет статью. Если запись не найдена — ErrNotFound.
	DeleteBlog(ctx context.Context, id string) error

	// IncrementViews атомарно ($inc) увеличивает счётчик просмотров на 1.
	// Срабатывает только для approved-статей; иначе ErrNotFound.
	IncrementViews(ctx context.Context, id string) error

	// ToggleLike атомарно переключает лайк пользователя: $addToSet, если лайка
	// нет, иначе $pull. Возвращает новое членство и итоговое число лайков.
	// Если запись не найдена — ErrNotFound.
	ToggleLike(ctx context.Context, id string, userID uuid.UUID) (liked bool, likes int64, err error)

	// AppendComment атомарно ($push) добавляет комментарий, генерируя его ID.
	// Возвращает созданный комментарий и новое количество комментариев.
	// Если запись не найдена — ErrNotFound.
	AppendComment(ctx context.Context, id string, comment models.Comment) (*models.Comment, int64, error)
}

// UserStorage описывает операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт пользователя. Дубликат email — ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error

	// UserByEmail возвращает пользователя по нормализованному email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)

	// UserByID возвращает пользователя по идентификатору.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// UpdateUser применяет частичное обновление профиля и возвращает результат.
	UpdateUser(ctx context.Context, id uuid.UUID, upd UpdateUserFields) (*models.User, error)

	// AuthorStats агрегирует статистику автора: количество статей по статусам
	// и суммы просмотров/лайков по approved-статьям.
	AuthorStats(ctx context.Context, authorID uuid.UUID) (*models.AuthorStats, error)
}
