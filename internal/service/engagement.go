package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/pkg/log"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

// LikeResult — итог переключения лайка.
type LikeResult struct {
	Liked bool
	Likes int64
}

// CommentResult — созданный комментарий и новое количество комментариев.
type CommentResult struct {
	Comment models.Comment
	Count   int64
}

// ToggleLike — переключение лайка актора на approved-статье.
// Повторный вызов тем же актором возвращает состояние к исходному.
//
// Поведение/ошибки:
//   - ErrUnauthenticated — аноним;
//   - ErrNotFound — статьи нет (или она скрыта от актора правилами видимости);
//   - ErrConflict — статья не в статусе approved;
//   - ErrInternal/ErrTimeout — ошибки стораджа.
//
// Атомарность обеспечивает сторадж (conditional $addToSet/$pull): конкурентные
// переключения разных акторов не теряют друг друга.
func (s *Service) ToggleLike(ctx context.Context, id string, actor uuid.UUID) (*LikeResult, error) {
	const op = "service/engagement/ToggleLike"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id, "actor", actor.String())

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	if err := s.requireApproved(ctx, op, id, actor); err != nil {
		return nil, err
	}

	liked, likes, err := s.blogs.ToggleLike(ctx, id, actor)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on ToggleLike", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	s.invalidateTrending(ctx)

	return &LikeResult{Liked: liked, Likes: likes}, nil
}

// AddComment — добавление комментария к approved-статье.
// Текст обрезается по краям; пустой или длиннее cfg.Limits.CommentMax —
// ErrInvalidArgument. Имя автора комментария денормализуется в ответ.
func (s *Service) AddComment(ctx context.Context, id string, actor uuid.UUID, text string) (*CommentResult, error) {
	const op = "service/engagement/AddComment"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id, "actor", actor.String())

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > s.cfg.Limits.CommentMax {
		lg.Warn("invalid argument: comment text")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.requireApproved(ctx, op, id, actor); err != nil {
		return nil, err
	}

	author, err := s.users.UserByID(ctx, actor)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}

		lg.Error("storage error on UserByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	comment, count, err := s.blogs.AppendComment(ctx, id, models.Comment{
		UserID:     actor,
		AuthorName: author.Name,
		Text:       text,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on AppendComment", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	s.invalidateTrending(ctx)

	return &CommentResult{Comment: *comment, Count: count}, nil
}

// requireApproved проверяет, что статья существует и находится в approved.
// Не-approved статья, скрытая от актора правилами видимости, отдаётся как
// ErrNotFound; видимая актору (владельцу/админу) — как ErrConflict.
func (s *Service) requireApproved(ctx context.Context, op, id string, actor uuid.UUID) error {
	if id == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	blog, err := s.blogs.BlogByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		log.From(ctx).Error("storage error on BlogByID", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	if blog.Status != models.StatusApproved {
		if blog.AuthorID != actor && !s.isAdmin(ctx, actor) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, ErrConflict)
	}

	return nil
}
