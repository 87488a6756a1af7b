package models

import (
	"time"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/service"
)

// User — пользователь в wire-формате. Хэш пароля наружу не отдаётся никогда.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`
	Website   string    `json:"website,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorStats — агрегированная статистика автора.
type AuthorStats struct {
	Articles   int64 `json:"articles"`
	TotalBlogs int64 `json:"total_blogs"`
	TotalViews int64 `json:"total_views"`
	TotalLikes int64 `json:"total_likes"`
	Followers  int64 `json:"followers"`
	Following  int64 `json:"following"`
}

// UserFromDomain конвертирует доменного пользователя.
func UserFromDomain(u models.User) User {
	return User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		Location:  u.Location,
		Website:   u.Website,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

type ProfileResponse struct {
	Success bool        `json:"success"`
	User    User        `json:"user"`
	Stats   AuthorStats `json:"stats"`
}

// ProfileFromDomain собирает ответ профиля со статистикой.
func ProfileFromDomain(p *service.Profile) ProfileResponse {
	return ProfileResponse{
		Success: true,
		User:    UserFromDomain(p.User),
		Stats: AuthorStats{
			Articles:   p.Stats.Articles,
			TotalBlogs: p.Stats.TotalBlogs,
			TotalViews: p.Stats.TotalViews,
			TotalLikes: p.Stats.TotalLikes,
			Followers:  p.Stats.Followers,
			Following:  p.Stats.Following,
		},
	}
}

// Частичная правка профиля: отсутствующее поле не трогается.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
	Website  *string `json:"website,omitempty"`
}

type UpdateProfileResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}
