package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/pkg/log"
)

// Вес просмотров в рейтинге: десять просмотров стоят одного лайка.
const viewsPerPoint = 10

// trendingScore — детерминированный рейтинг статьи:
// likes + comments + floor(views/10).
func trendingScore(b models.Blog) int64 {
	return int64(len(b.LikedBy)) + int64(len(b.Comments)) + b.Views/viewsPerPoint
}

// ListTrending — трендовая лента: сводки всех approved-статей, отсортированные
// по рейтингу (убывание). Тай-брейк — published_at (убывание), затем id
// (убывание): порядок полный и воспроизводим от вызова к вызову.
//
// Read-time проекция: хранилище не мутируется. При включённом Redis-кэше
// выдача кэшируется и сбрасывается на любой мутации статей (см.
// invalidateTrending) плюс TTL-страховка.
func (s *Service) ListTrending(ctx context.Context) ([]models.TrendingBlog, error) {
	const op = "service/trending/ListTrending"

	lg := log.From(ctx).With("op", op)

	if s.trending != nil {
		items, ok, err := s.trending.Get(ctx)
		if err != nil {
			// Кэш — ускорение, не источник истины: при сбое считаем заново.
			lg.Warn("trending cache get failed", "err", err)
		} else if ok {
			return items, nil
		}
	}

	blogs, err := s.blogs.BlogsByStatus(ctx, models.StatusApproved, models.ListOptions{Field: "published_at"})
	if err != nil {
		lg.Error("storage error on BlogsByStatus", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	items := make([]models.TrendingBlog, 0, len(blogs))
	for _, b := range blogs {
		items = append(items, models.TrendingBlog{
			ID:            b.ID,
			Title:         b.Title,
			Excerpt:       b.Excerpt,
			AuthorName:    b.AuthorName,
			Tags:          b.Tags,
			FeaturedImage: b.FeaturedImage,
			Views:         b.Views,
			Likes:         int64(len(b.LikedBy)),
			CommentsCount: int64(len(b.Comments)),
			Score:         trendingScore(b),
			PublishedAt:   b.PublishedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}

		pi, pj := items[i].PublishedAt, items[j].PublishedAt
		switch {
		case pi != nil && pj != nil && !pi.Equal(*pj):
			return pi.After(*pj)
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		}

		return items[i].ID > items[j].ID
	})

	if s.trending != nil {
		if err := s.trending.Set(ctx, items, s.cfg.Trending.CacheTTL); err != nil {
			lg.Warn("trending cache set failed", "err", err)
		}
	}

	return items, nil
}

// invalidateTrending — best-effort сброс кэша трендов после мутации статьи.
// Сбой кэша не влияет на исход операции: TTL доберёт устаревшую выдачу.
func (s *Service) invalidateTrending(ctx context.Context) {
	if s.trending == nil {
		return
	}

	if err := s.trending.Invalidate(ctx); err != nil {
		log.From(ctx).Warn("trending cache invalidate failed", "err", err)
	}
}
