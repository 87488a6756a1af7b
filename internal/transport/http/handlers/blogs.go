package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/AkaashSamson/Devnovate-Blogs/internal/errors"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/metrics"
	domain "github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/service"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/transport/http/middleware"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/transport/http/models"
)

// CreateBlog — POST /blogs.
func (h *Handlers) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var in models.CreateBlogRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	blog, err := h.service.CreateBlog(r.Context(), service.CreateBlogInput{
		Actor:         middleware.ActorFrom(r.Context()),
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Tags:          in.Tags,
		FeaturedImage: in.FeaturedImage,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.CreateBlogResponse{
		Success: true,
		Blog:    models.BlogFromDomain(*blog, false),
	})
}

// GetBlog — GET /blogs/{id}. Просмотр чужой approved-статьи засчитывает view.
func (h *Handlers) GetBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: empty blog id", service.ErrInvalidArgument))
		return
	}

	view, err := h.service.BlogByID(r.Context(), id, middleware.ActorFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GetBlogFromView(view))
}

// ListBlogs — GET /blogs: все approved-статьи, свежие публикации первыми.
func (h *Handlers) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.ListApproved(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ListBlogsResponse{
		Success: true,
		Blogs:   models.BlogsFromDomain(blogs),
	})
}

// MyBlogs — GET /blogs/my-blogs: все статьи автора во всех статусах.
func (h *Handlers) MyBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.ListByAuthor(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ListBlogsResponse{
		Success: true,
		Blogs:   models.BlogsFromDomain(blogs),
	})
}

// Trending — GET /blogs/trending.
func (h *Handlers) Trending(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListTrending(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TrendingResponse{
		Success: true,
		Blogs:   items,
	})
}

// UpdateBlog — PUT /blogs/{id}: частичная правка владельцем.
func (h *Handlers) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: empty blog id", service.ErrInvalidArgument))
		return
	}

	var in models.UpdateBlogRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	blog, err := h.service.UpdateBlog(r.Context(), service.UpdateBlogInput{
		Actor:         middleware.ActorFrom(r.Context()),
		ID:            id,
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Tags:          in.Tags,
		FeaturedImage: in.FeaturedImage,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UpdateBlogResponse{
		Success: true,
		Blog:    models.BlogFromDomain(*blog, false),
	})
}

// DeleteBlog — DELETE /blogs/{id}: удаление владельцем в любом статусе.
func (h *Handlers) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: empty blog id", service.ErrInvalidArgument))
		return
	}

	if err := h.service.DeleteBlog(r.Context(), id, middleware.ActorFrom(r.Context())); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.DeleteBlogResponse{
		Success: true,
		Message: "blog deleted",
	})
}

// PendingBlogs — GET /blogs/pending: очередь модерации (админ).
// ?order=asc|desc задаёт порядок по created_at; по умолчанию новые первыми.
func (h *Handlers) PendingBlogs(w http.ResponseWriter, r *http.Request) {
	order := service.QueueNewestFirst
	switch r.URL.Query().Get("order") {
	case "", "desc":
	case "asc":
		order = service.QueueOldestFirst
	default:
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: order must be asc or desc", service.ErrInvalidArgument))
		return
	}

	blogs, err := h.service.ListPending(r.Context(), middleware.ActorFrom(r.Context()), order)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ListBlogsResponse{
		Success: true,
		Blogs:   models.BlogsFromDomain(blogs),
	})
}

// PendingBlog — GET /blogs/pending/{id}: карточка на рассмотрение (админ).
func (h *Handlers) PendingBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: empty blog id", service.ErrInvalidArgument))
		return
	}

	blog, err := h.service.PendingByID(r.Context(), id, middleware.ActorFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GetBlogResponse{
		Success: true,
		Blog:    models.BlogFromDomain(*blog, true),
	})
}

// ApproveBlog — PUT /blogs/{id}/approve (админ).
func (h *Handlers) ApproveBlog(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "approved", h.service.Approve)
}

// RejectBlog — PUT /blogs/{id}/reject (админ).
func (h *Handlers) RejectBlog(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "rejected", h.service.Reject)
}

func (h *Handlers) moderate(
	w http.ResponseWriter,
	r *http.Request,
	outcome string,
	decide func(ctx context.Context, id string, actor uuid.UUID) (*domain.Blog, error),
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: empty blog id", service.ErrInvalidArgument))
		return
	}

	blog, err := decide(r.Context(), id, middleware.ActorFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	metrics.ModerationDecisions.WithLabelValues(outcome).Inc()
	writeJSON(w, http.StatusOK, models.ModerateBlogResponse{
		Success: true,
		Blog:    models.BlogFromDomain(*blog, false),
	})
}

// ToggleLike — POST /blogs/{id}/like.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: empty blog id", service.ErrInvalidArgument))
		return
	}

	res, err := h.service.ToggleLike(r.Context(), id, middleware.ActorFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ToggleLikeResponse{
		Success:    true,
		IsLiked:    res.Liked,
		LikesCount: res.Likes,
	})
}

// AddComment — POST /blogs/{id}/comments.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: empty blog id", service.ErrInvalidArgument))
		return
	}

	var in models.AddCommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.service.AddComment(r.Context(), id, middleware.ActorFrom(r.Context()), in.Text)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.AddCommentResponse{
		Success:       true,
		Comment:       models.CommentFromDomain(res.Comment),
		CommentsCount: res.Count,
	})
}
