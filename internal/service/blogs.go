package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/pkg/log"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

// Входные структуры сервисного слоя.

// CreateBlogInput — публикация статьи автором. Статья всегда создаётся
// в статусе pending; published_at не выставляется до первого approve.
type CreateBlogInput struct {
	Actor         uuid.UUID
	Title         string
	Content       string
	Excerpt       string
	Tags          []string
	FeaturedImage string
}

// UpdateBlogInput — правка статьи владельцем. nil-поле — «не трогать».
// Правка title/content/excerpt возвращает статью в pending; правка только
// тегов/обложки статус не меняет.
type UpdateBlogInput struct {
	Actor         uuid.UUID
	ID            string
	Title         *string
	Content       *string
	Excerpt       *string
	Tags          *[]string
	FeaturedImage *string
}

// BlogView — статья глазами конкретного актора.
type BlogView struct {
	Blog    models.Blog
	IsLiked bool
	IsOwner bool
}

// QueueOrder — порядок очереди модерации по created_at.
type QueueOrder string

const (
	QueueNewestFirst QueueOrder = "desc"
	QueueOldestFirst QueueOrder = "asc"
)

// CreateBlog — создание статьи аутентифицированным автором.
//
// Валидация:
//   - title/excerpt/content непустые после TrimSpace;
//   - title <= cfg.Limits.TitleMax, excerpt <= cfg.Limits.ExcerptMax;
//   - теги нормализуются (lowercase, trim), пустые и дубли отбрасываются.
//
// Имя автора денормализуется в статью на момент создания и далее не
// отслеживает переименования пользователя.
func (s *Service) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	const op = "service/blogs/CreateBlog"

	lg := log.From(ctx).With("op", op, "actor", in.Actor.String())

	if err := requireActor(op, in.Actor); err != nil {
		return nil, err
	}

	title, err := s.validateTitle(in.Title)
	if err != nil {
		lg.Warn("invalid argument: title")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	excerpt, err := s.validateExcerpt(in.Excerpt)
	if err != nil {
		lg.Warn("invalid argument: excerpt")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		lg.Warn("invalid argument: empty content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	author, err := s.users.UserByID(ctx, in.Actor)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}

		lg.Error("storage error on UserByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	blog := models.Blog{
		Title:         title,
		Content:       content,
		Excerpt:       excerpt,
		AuthorID:      author.ID,
		AuthorName:    author.Name,
		Tags:          normalizeTags(in.Tags),
		FeaturedImage: strings.TrimSpace(in.FeaturedImage),
		Status:        models.StatusPending,
	}

	created, err := s.blogs.SaveBlog(ctx, blog)
	if err != nil {
		lg.Error("storage error on SaveBlog", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	return created, nil
}

// BlogByID — чтение одной статьи с правилами видимости:
//   - approved читают все (в том числе анонимы);
//   - не-approved читают только владелец и администратор, остальным — ErrNotFound
//     (намеренно не ErrForbidden: существование скрытых статей не раскрываем).
//
// Просмотр не-владельцем approved-статьи инкрементирует счётчик просмотров
// ровно на 1 за вызов; владелец и не-approved статьи счётчик не меняют.
func (s *Service) BlogByID(ctx context.Context, id string, actor uuid.UUID) (*BlogView, error) {
	const op = "service/blogs/BlogByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	blog, err := s.blogs.BlogByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on BlogByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	isOwner := actor != uuid.Nil && blog.AuthorID == actor

	if blog.Status != models.StatusApproved && !isOwner {
		if !s.isAdmin(ctx, actor) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
	}

	if blog.Status == models.StatusApproved && !isOwner {
		if err := s.blogs.IncrementViews(ctx, id); err != nil {
			// Промах по фильтру (гонка со сменой статуса) — не ошибка запроса.
			lg.Warn("increment views skipped", "err", err)
		} else {
			blog.Views++
			s.invalidateTrending(ctx)
		}
	}

	return &BlogView{
		Blog:    *blog,
		IsLiked: actor != uuid.Nil && blog.Liked(actor),
		IsOwner: isOwner,
	}, nil
}

// ListApproved — публичная лента: только approved, сначала свежие публикации.
func (s *Service) ListApproved(ctx context.Context) ([]models.Blog, error) {
	const op = "service/blogs/ListApproved"

	items, err := s.blogs.BlogsByStatus(ctx, models.StatusApproved, models.ListOptions{Field: "published_at"})
	if err != nil {
		log.From(ctx).Error("storage error on BlogsByStatus", "op", op, "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	return items, nil
}

// ListByAuthor — все статьи владельца в любом статусе, сначала новые.
func (s *Service) ListByAuthor(ctx context.Context, actor uuid.UUID) ([]models.Blog, error) {
	const op = "service/blogs/ListByAuthor"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	items, err := s.blogs.BlogsByAuthor(ctx, actor)
	if err != nil {
		log.From(ctx).Error("storage error on BlogsByAuthor", "op", op, "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	return items, nil
}

// ListPending — очередь модерации (только для администратора): все pending,
// упорядоченные по created_at в выбранном направлении.
func (s *Service) ListPending(ctx context.Context, actor uuid.UUID, order QueueOrder) ([]models.Blog, error) {
	const op = "service/blogs/ListPending"

	if _, err := s.requireAdmin(ctx, op, actor); err != nil {
		return nil, err
	}

	items, err := s.blogs.BlogsByStatus(ctx, models.StatusPending, models.ListOptions{
		Field:     "created_at",
		Ascending: order == QueueOldestFirst,
	})
	if err != nil {
		log.From(ctx).Error("storage error on BlogsByStatus", "op", op, "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	return items, nil
}

// PendingByID — предпросмотр одной статьи из очереди (только администратор).
// Статья вне статуса pending — ErrConflict.
func (s *Service) PendingByID(ctx context.Context, id string, actor uuid.UUID) (*models.Blog, error) {
	const op = "service/blogs/PendingByID"

	if _, err := s.requireAdmin(ctx, op, actor); err != nil {
		return nil, err
	}

	blog, err := s.blogs.BlogByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		log.From(ctx).Error("storage error on BlogByID", "op", op, "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	if blog.Status != models.StatusPending {
		return nil, fmt.Errorf("%s: %w", op, ErrConflict)
	}

	return blog, nil
}

// Approve — одобрение статьи администратором: status=approved,
// published_at=now. Переход не защищён от повторов: повторный approve
// успешен и обновляет published_at (зафиксированное поведение продукта).
func (s *Service) Approve(ctx context.Context, id string, actor uuid.UUID) (*models.Blog, error) {
	const op = "service/blogs/Approve"

	now := time.Now().UTC()
	return s.moderate(ctx, op, id, actor, models.StatusApproved, &now)
}

// Reject — отклонение статьи администратором. Как и Approve, идемпотентен
// и не требует, чтобы статья была в pending.
func (s *Service) Reject(ctx context.Context, id string, actor uuid.UUID) (*models.Blog, error) {
	const op = "service/blogs/Reject"

	return s.moderate(ctx, op, id, actor, models.StatusRejected, nil)
}

func (s *Service) moderate(ctx context.Context, op, id string, actor uuid.UUID, status models.Status, publishedAt *time.Time) (*models.Blog, error) {
	lg := log.From(ctx).With("op", op, "id", id, "actor", actor.String())

	if _, err := s.requireAdmin(ctx, op, actor); err != nil {
		return nil, err
	}

	blog, err := s.blogs.SetStatus(ctx, strings.TrimSpace(id), status, publishedAt)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on SetStatus", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	lg.Info("moderation_decision", "status", string(status))
	s.invalidateTrending(ctx)

	return blog, nil
}

// UpdateBlog — правка статьи владельцем. Не-владельцу — ErrForbidden.
// Правка контентных полей (title/content/excerpt) возвращает статью в pending;
// published_at при этом не очищается (сохранённое поведение источника).
func (s *Service) UpdateBlog(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	const op = "service/blogs/UpdateBlog"

	lg := log.From(ctx).With("op", op, "id", in.ID, "actor", in.Actor.String())

	if err := requireActor(op, in.Actor); err != nil {
		return nil, err
	}

	blog, err := s.blogs.BlogByID(ctx, strings.TrimSpace(in.ID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on BlogByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	if blog.AuthorID != in.Actor {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	upd := storage.UpdateBlogFields{}

	if in.Title != nil {
		title, err := s.validateTitle(*in.Title)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.Title = &title
	}

	if in.Excerpt != nil {
		excerpt, err := s.validateExcerpt(*in.Excerpt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.Excerpt = &excerpt
	}

	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Content = &content
	}

	if in.Tags != nil {
		tags := normalizeTags(*in.Tags)
		upd.Tags = &tags
	}

	if in.FeaturedImage != nil {
		img := strings.TrimSpace(*in.FeaturedImage)
		upd.FeaturedImage = &img
	}

	// Смена контента — повторная модерация. Теги/обложка статус не трогают.
	upd.ResetStatus = upd.Title != nil || upd.Content != nil || upd.Excerpt != nil

	updated, err := s.blogs.UpdateBlog(ctx, blog.ID, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UpdateBlog", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	s.invalidateTrending(ctx)

	return updated, nil
}

// DeleteBlog — жёсткое удаление статьи владельцем, без оглядки на статус.
func (s *Service) DeleteBlog(ctx context.Context, id string, actor uuid.UUID) error {
	const op = "service/blogs/DeleteBlog"

	lg := log.From(ctx).With("op", op, "id", id, "actor", actor.String())

	if err := requireActor(op, actor); err != nil {
		return err
	}

	blog, err := s.blogs.BlogByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on BlogByID", "err", err)
		return fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	if blog.AuthorID != actor {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if err := s.blogs.DeleteBlog(ctx, blog.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on DeleteBlog", "err", err)
		return fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	lg.Info("blog_deleted")
	s.invalidateTrending(ctx)

	return nil
}

// isAdmin — мягкая проверка администратора для правил видимости:
// любая ошибка lookup'а трактуется как «не админ».
func (s *Service) isAdmin(ctx context.Context, actor uuid.UUID) bool {
	if actor == uuid.Nil {
		return false
	}

	user, err := s.users.UserByID(ctx, actor)
	return err == nil && user.IsAdmin
}

func (s *Service) validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > s.cfg.Limits.TitleMax {
		return "", ErrInvalidArgument
	}

	return title, nil
}

func (s *Service) validateExcerpt(excerpt string) (string, error) {
	excerpt = strings.TrimSpace(excerpt)
	if excerpt == "" || utf8.RuneCountInString(excerpt) > s.cfg.Limits.ExcerptMax {
		return "", ErrInvalidArgument
	}

	return excerpt, nil
}

// normalizeTags приводит теги к lowercase, отбрасывая пустые и дубли.
// Порядок первых вхождений сохраняется.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}

		if _, ok := seen[tag]; ok {
			continue
		}

		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	return out
}
