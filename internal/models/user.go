package models

import (
	"time"

	"github.com/google/uuid"
)

// User — пользователь платформы.
// IsAdmin выдаётся вручную (нет API самоназначения) и проверяется
// воркфлоу модерации при каждом админском действии.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Bio          string
	Location     string
	Website      string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthorStats — агрегированная статистика автора по его статьям.
// Followers/Following пока всегда 0 — социальный граф не реализован.
type AuthorStats struct {
	Articles   int64
	TotalBlogs int64
	TotalViews int64
	TotalLikes int64
	Followers  int64
	Following  int64
}
