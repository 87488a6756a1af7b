// Package models описывает wire-формат REST API: запросы, ответы и
// конвертацию из доменных моделей.
package models

import (
	"time"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/service"
)

// Blog — статья в wire-формате.
type Blog struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	AuthorID      string     `json:"author_id"`
	AuthorName    string     `json:"author_name"`
	Tags          []string   `json:"tags"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Status        string     `json:"status"`
	Views         int64      `json:"views"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	Comments      []Comment  `json:"comments,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Comment — комментарий статьи в wire-формате.
type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// BlogFromDomain конвертирует доменную статью; withComments управляет
// включением ленты комментариев (детальная карточка — да, списки — нет).
func BlogFromDomain(b models.Blog, withComments bool) Blog {
	out := Blog{
		ID:            b.ID,
		Title:         b.Title,
		Content:       b.Content,
		Excerpt:       b.Excerpt,
		AuthorID:      b.AuthorID.String(),
		AuthorName:    b.AuthorName,
		Tags:          b.Tags,
		FeaturedImage: b.FeaturedImage,
		Status:        string(b.Status),
		Views:         b.Views,
		LikesCount:    int64(len(b.LikedBy)),
		CommentsCount: int64(len(b.Comments)),
		PublishedAt:   b.PublishedAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if withComments {
		out.Comments = make([]Comment, 0, len(b.Comments))
		for _, c := range b.Comments {
			out.Comments = append(out.Comments, CommentFromDomain(c))
		}
	}

	return out
}

// CommentFromDomain конвертирует доменный комментарий.
func CommentFromDomain(c models.Comment) Comment {
	return Comment{
		ID:         c.ID,
		UserID:     c.UserID.String(),
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

// BlogsFromDomain конвертирует срез статей без лент комментариев.
func BlogsFromDomain(blogs []models.Blog) []Blog {
	out := make([]Blog, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, BlogFromDomain(b, false))
	}

	return out
}

// Создание статьи.
type CreateBlogRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags,omitempty"`
	FeaturedImage string   `json:"featured_image,omitempty"`
}

type CreateBlogResponse struct {
	Success bool `json:"success"`
	Blog    Blog `json:"blog"`
}

// Частичная правка: отсутствующее поле не трогается.
type UpdateBlogRequest struct {
	Title         *string   `json:"title,omitempty"`
	Content       *string   `json:"content,omitempty"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	FeaturedImage *string   `json:"featured_image,omitempty"`
}

type UpdateBlogResponse struct {
	Success bool `json:"success"`
	Blog    Blog `json:"blog"`
}

// Детальная карточка статьи глазами актора.
type GetBlogResponse struct {
	Success bool `json:"success"`
	Blog    Blog `json:"blog"`
	IsLiked bool `json:"is_liked"`
	IsOwner bool `json:"is_owner"`
}

// GetBlogFromView собирает детальный ответ из BlogView.
func GetBlogFromView(v *service.BlogView) GetBlogResponse {
	return GetBlogResponse{
		Success: true,
		Blog:    BlogFromDomain(v.Blog, true),
		IsLiked: v.IsLiked,
		IsOwner: v.IsOwner,
	}
}

type ListBlogsResponse struct {
	Success bool   `json:"success"`
	Blogs   []Blog `json:"blogs"`
}

type DeleteBlogResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ModerateBlogResponse struct {
	Success bool `json:"success"`
	Blog    Blog `json:"blog"`
}

type ToggleLikeResponse struct {
	Success    bool  `json:"success"`
	IsLiked    bool  `json:"is_liked"`
	LikesCount int64 `json:"likes_count"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

type AddCommentResponse struct {
	Success       bool    `json:"success"`
	Comment       Comment `json:"comment"`
	CommentsCount int64   `json:"comments_count"`
}

type TrendingResponse struct {
	Success bool                  `json:"success"`
	Blogs   []models.TrendingBlog `json:"blogs"`
}
