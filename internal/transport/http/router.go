// Package http собирает REST-роутер blog-service.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/config"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/service"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/transport/http/handlers"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/transport/http/middleware"
)

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(s *service.Service, cfg config.Config, logger *slog.Logger) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),          // безопасно ловим паники
		middleware.RequestID(),        // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(logger),    // request-scoped логгер в контексте + access-лог
		middleware.Metrics(),          // счётчики и гистограммы по запросам
		middleware.CORS(cfg.CORS),     // allow-list источников
		middleware.Auth(s, cfg.Auth),  // токен -> идентификатор актора в контексте
	)
	if cfg.Timeouts.Service > 0 {
		root.Use(middleware.Timeout(cfg.Timeouts.Service)) // общий дедлайн запроса
	}

	h := handlers.New(s, cfg)

	if cfg.HTTP.BasePath != "" && cfg.HTTP.BasePath != "/" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(cfg.HTTP.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Статические сегменты (trending, my-blogs, pending) chi матчит раньше {id}.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)

	// users
	r.Get("/users/me", h.Me)
	r.Put("/users/me", h.UpdateMe)

	// blogs: публичные выборки
	r.Get("/blogs", h.ListBlogs)
	r.Get("/blogs/trending", h.Trending)
	r.Get("/blogs/{id}", h.GetBlog)

	// blogs: авторские операции
	r.Post("/blogs", h.CreateBlog)
	r.Get("/blogs/my-blogs", h.MyBlogs)
	r.Put("/blogs/{id}", h.UpdateBlog)
	r.Delete("/blogs/{id}", h.DeleteBlog)

	// blogs: модерация (админ)
	r.Get("/blogs/pending", h.PendingBlogs)
	r.Get("/blogs/pending/{id}", h.PendingBlog)
	r.Post("/blogs/{id}/approve", h.ApproveBlog)
	r.Post("/blogs/{id}/reject", h.RejectBlog)

	// blogs: вовлечённость
	r.Post("/blogs/{id}/like", h.ToggleLike)
	r.Post("/blogs/{id}/comments", h.AddComment)
}
