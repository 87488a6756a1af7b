package mongo

// Интеграционные тесты операций над пользователями (GO_TEST_INTEGRATION=1).

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

// seedUser — вставка пользователя напрямую через SaveUser.
func seedUser(t *testing.T, m *Mongo, email string) *models.User {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	now := toMS(time.Now())
	user := &models.User{
		ID:           uuid.New(),
		Name:         "alice",
		Email:        email,
		PasswordHash: "$2a$12$fakehash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := m.SaveUser(ctx, user); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	return user
}

// SaveUser + выборки; дубликат email -> ErrAlreadyExists.
func TestSaveUser_AndLookups(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	user := seedUser(t, m, "alice@example.com")

	byEmail, err := m.UserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("id mismatch: %s vs %s", byEmail.ID, user.ID)
	}

	byID, err := m.UserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if byID.Email != user.Email {
		t.Fatalf("email mismatch: %s", byID.Email)
	}

	// дубликат email (уникальный индекс)
	dup := *user
	dup.ID = uuid.New()
	if err := m.SaveUser(ctx, &dup); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}

	// нет таких
	if _, err := m.UserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := m.UserByID(ctx, uuid.New()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// UpdateUser: трогаем только заданные поля.
func TestUpdateUser(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	user := seedUser(t, m, "alice@example.com")

	bio := "go developer"
	updated, err := m.UpdateUser(ctx, user.ID, storage.UpdateUserFields{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if updated.Bio != bio {
		t.Fatalf("bio not updated: %q", updated.Bio)
	}
	if updated.Name != user.Name {
		t.Fatalf("name must be untouched: %q", updated.Name)
	}

	if _, err := m.UpdateUser(ctx, uuid.New(), storage.UpdateUserFields{Bio: &bio}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// AuthorStats: total по всем статусам, агрегаты только по approved.
func TestAuthorStats(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	author := uuid.New()

	// два approved с просмотрами/лайками + один pending.
	for i := 0; i < 2; i++ {
		blog, err := m.SaveBlog(ctx, models.Blog{
			Title: "t", Content: "c", Excerpt: "e",
			AuthorID: author, AuthorName: "alice",
			Status: models.StatusApproved,
		})
		if err != nil {
			t.Fatalf("SaveBlog: %v", err)
		}

		for v := 0; v < 5; v++ {
			if err := m.IncrementViews(ctx, blog.ID); err != nil {
				t.Fatalf("IncrementViews: %v", err)
			}
		}
		if _, _, err := m.ToggleLike(ctx, blog.ID, uuid.New()); err != nil {
			t.Fatalf("ToggleLike: %v", err)
		}
	}

	if _, err := m.SaveBlog(ctx, models.Blog{
		Title: "t", Content: "c", Excerpt: "e",
		AuthorID: author, AuthorName: "alice",
		Status: models.StatusPending,
	}); err != nil {
		t.Fatalf("SaveBlog pending: %v", err)
	}

	stats, err := m.AuthorStats(ctx, author)
	if err != nil {
		t.Fatalf("AuthorStats: %v", err)
	}

	if stats.TotalBlogs != 3 {
		t.Fatalf("total blogs: want 3, got %d", stats.TotalBlogs)
	}
	if stats.Articles != 2 {
		t.Fatalf("approved articles: want 2, got %d", stats.Articles)
	}
	if stats.TotalViews != 10 {
		t.Fatalf("total views: want 10, got %d", stats.TotalViews)
	}
	if stats.TotalLikes != 2 {
		t.Fatalf("total likes: want 2, got %d", stats.TotalLikes)
	}

	// автор без статей — нули.
	empty, err := m.AuthorStats(ctx, uuid.New())
	if err != nil {
		t.Fatalf("AuthorStats empty: %v", err)
	}
	if empty.TotalBlogs != 0 || empty.Articles != 0 || empty.TotalViews != 0 || empty.TotalLikes != 0 {
		t.Fatalf("want zero stats, got %+v", empty)
	}
}
