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

// Profile — пользователь вместе с агрегированной статистикой автора.
type Profile struct {
	User  models.User
	Stats models.AuthorStats
}

// UpdateProfileInput — частичное обновление профиля. nil-поле — «не трогать».
type UpdateProfileInput struct {
	Actor    uuid.UUID
	Name     *string
	Bio      *string
	Location *string
	Website  *string
}

// Me — профиль текущего пользователя со статистикой по его статьям.
func (s *Service) Me(ctx context.Context, actor uuid.UUID) (*Profile, error) {
	const op = "service/users/Me"

	lg := log.From(ctx).With("op", op, "actor", actor.String())

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	user, err := s.users.UserByID(ctx, actor)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UserByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	stats, err := s.users.AuthorStats(ctx, actor)
	if err != nil {
		lg.Error("storage error on AuthorStats", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	return &Profile{User: *user, Stats: *stats}, nil
}

// UpdateProfile — правка профиля текущего пользователя.
// Имя непустое; bio не длиннее cfg.Limits.BioMax.
func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	const op = "service/users/UpdateProfile"

	lg := log.From(ctx).With("op", op, "actor", in.Actor.String())

	if err := requireActor(op, in.Actor); err != nil {
		return nil, err
	}

	upd := storage.UpdateUserFields{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Name = &name
	}

	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if utf8.RuneCountInString(bio) > s.cfg.Limits.BioMax {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Bio = &bio
	}

	if in.Location != nil {
		loc := strings.TrimSpace(*in.Location)
		upd.Location = &loc
	}

	if in.Website != nil {
		site := strings.TrimSpace(*in.Website)
		upd.Website = &site
	}

	user, err := s.users.UpdateUser(ctx, in.Actor, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UpdateUser", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	return user, nil
}
