package service

// Тесты вовлечённости (internal/service/engagement.go): лайки и комментарии.

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

// Лайк доступен только аутентифицированному актору на approved-статье.
func TestService_ToggleLike_OK(t *testing.T) {
	s, mb, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	actor := uuid.New()
	blog := mustBlog(uuid.New(), models.StatusApproved)

	// первый вызов — лайк ставится
	mb.EXPECT().BlogByID(gomock.Any(), blog.ID).Return(blog, nil)
	mb.EXPECT().ToggleLike(gomock.Any(), blog.ID, actor).Return(true, int64(1), nil)

	res, err := s.ToggleLike(context.Background(), blog.ID, actor)
	require.NoError(t, err)
	require.True(t, res.Liked)
	require.EqualValues(t, 1, res.Likes)

	// повторный вызов — лайк снимается
	mb.EXPECT().BlogByID(gomock.Any(), blog.ID).Return(blog, nil)
	mb.EXPECT().ToggleLike(gomock.Any(), blog.ID, actor).Return(false, int64(0), nil)

	res, err = s.ToggleLike(context.Background(), blog.ID, actor)
	require.NoError(t, err)
	require.False(t, res.Liked)
	require.EqualValues(t, 0, res.Likes)
}

// Аноним — ErrUnauthenticated, несуществующая статья — ErrNotFound.
func TestService_ToggleLike_AuthAndExistence(t *testing.T) {
	s, mb, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.ToggleLike(context.Background(), "507f1f77bcf86cd799439011", uuid.Nil)
	require.ErrorIs(t, err, ErrUnauthenticated)

	mb.EXPECT().BlogByID(gomock.Any(), "507f1f77bcf86cd799439011").Return(nil, storage.ErrNotFound)
	_, err = s.ToggleLike(context.Background(), "507f1f77bcf86cd799439011", uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

// Не-approved статья: постороннему — ErrNotFound (скрываем существование),
// владельцу — ErrConflict (видит, но лайкать нечего).
func TestService_ToggleLike_NotApproved(t *testing.T) {
	s, mb, mu, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	owner := uuid.New()
	stranger := mustUser(false)
	blog := mustBlog(owner, models.StatusPending)

	mb.EXPECT().BlogByID(gomock.Any(), blog.ID).Return(blog, nil)
	mu.EXPECT().UserByID(gomock.Any(), stranger.ID).Return(stranger, nil)
	_, err := s.ToggleLike(context.Background(), blog.ID, stranger.ID)
	require.ErrorIs(t, err, ErrNotFound)

	mb.EXPECT().BlogByID(gomock.Any(), blog.ID).Return(blog, nil)
	_, err = s.ToggleLike(context.Background(), blog.ID, owner)
	require.ErrorIs(t, err, ErrConflict)
}

// Валидация текста: пусто после TrimSpace, превышение лимита.
func TestService_AddComment_Validation(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	actor := uuid.New()

	_, err := s.AddComment(context.Background(), "507f1f77bcf86cd799439011", uuid.Nil, "text")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = s.AddComment(context.Background(), "507f1f77bcf86cd799439011", actor, "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.AddComment(context.Background(), "507f1f77bcf86cd799439011", actor, strings.Repeat("x", 1001))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Happy-path: текст обрезается, имя автора денормализуется, счётчик растёт.
func TestService_AddComment_OK(t *testing.T) {
	s, mb, mu, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	author := mustUser(false)
	blog := mustBlog(uuid.New(), models.StatusApproved)

	mb.EXPECT().BlogByID(gomock.Any(), blog.ID).Return(blog, nil)
	mu.EXPECT().UserByID(gomock.Any(), author.ID).Return(author, nil)
	mb.EXPECT().
		AppendComment(gomock.Any(), blog.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, c models.Comment) (*models.Comment, int64, error) {
			require.Equal(t, "great post", c.Text)
			require.Equal(t, author.Name, c.AuthorName)

			c.ID = uuid.New().String()
			c.CreatedAt = time.Now().UTC()
			return &c, 3, nil
		})

	res, err := s.AddComment(context.Background(), blog.ID, author.ID, "  great post  ")
	require.NoError(t, err)
	require.Equal(t, "great post", res.Comment.Text)
	require.EqualValues(t, 3, res.Count)
}

// Комментарий к не-approved статье — та же логика видимости, что и у лайков.
func TestService_AddComment_NotApproved(t *testing.T) {
	s, mb, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	owner := uuid.New()
	blog := mustBlog(owner, models.StatusRejected)

	mb.EXPECT().BlogByID(gomock.Any(), blog.ID).Return(blog, nil)
	_, err := s.AddComment(context.Background(), blog.ID, owner, "text")
	require.ErrorIs(t, err, ErrConflict)
}
