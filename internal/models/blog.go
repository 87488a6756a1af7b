// Package models содержит доменные сущности блог-платформы.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Status — статус модерации статьи.
type Status string

const (
	// StatusPending — статья отправлена и ждёт решения администратора.
	StatusPending Status = "pending"
	// StatusApproved — статья одобрена и видна всем.
	StatusApproved Status = "approved"
	// StatusRejected — статья отклонена; видна только автору и администратору.
	StatusRejected Status = "rejected"
)

// Valid сообщает, входит ли статус в допустимое множество.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}

	return false
}

// Blog — внутренняя доменная модель статьи (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB в hex-виде. Наружу/вовнутрь конвертируется в string.
//   - AuthorID — UUID пользователя; неизменяем после создания.
//   - AuthorName — денормализованный снимок имени автора на момент создания,
//     последующие переименования пользователя его не трогают.
//   - Tags — нормализованные (lowercase) теги; порядок не значим.
//   - LikedBy — множество UUID пользователей: один пользователь — максимум один лайк.
//   - Views — неубывающий счётчик; инкрементируется только атомарным $inc.
//   - PublishedAt — выставляется в момент первого approve и далее не очищается,
//     даже если правка автора вернула статью в pending.
type Blog struct {
	ID            string
	Title         string
	Content       string
	Excerpt       string
	AuthorID      uuid.UUID
	AuthorName    string
	Tags          []string
	FeaturedImage string
	Status        Status
	Views         int64
	LikedBy       []uuid.UUID
	Comments      []Comment
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Liked сообщает, есть ли лайк от пользователя.
func (b *Blog) Liked(userID uuid.UUID) bool {
	for _, id := range b.LikedBy {
		if id == userID {
			return true
		}
	}

	return false
}

// Comment — встроенный комментарий статьи. Append-only: правка и удаление
// комментариев API не предусмотрены.
type Comment struct {
	ID         string
	UserID     uuid.UUID
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// ListOptions — параметры сортировки выборки по статусу.
// Field — поле «свежести» ("created_at" или "published_at"), Ascending —
// направление; (created_at, false) — сначала новые.
type ListOptions struct {
	Field     string
	Ascending bool
}

// TrendingBlog — проекция трендовой выдачи: сводка одобренной статьи с
// производным рейтингом. Ничего в хранилище не мутирует.
type TrendingBlog struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	AuthorName    string     `json:"author_name"`
	Tags          []string   `json:"tags"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Views         int64      `json:"views"`
	Likes         int64      `json:"likes"`
	CommentsCount int64      `json:"comments_count"`
	Score         int64      `json:"trending_points"`
	PublishedAt   *time.Time `json:"published_at"`
}
