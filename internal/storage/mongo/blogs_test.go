package mongo

// Интеграционные тесты операций над статьями (GO_TEST_INTEGRATION=1).

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

// seedBlog — вставка статьи напрямую через SaveBlog.
func seedBlog(t *testing.T, m *Mongo, status models.Status) *models.Blog {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	blog, err := m.SaveBlog(ctx, models.Blog{
		Title:      "seed title",
		Content:    "seed content",
		Excerpt:    "seed excerpt",
		AuthorID:   uuid.New(),
		AuthorName: "alice",
		Tags:       []string{"go"},
		Status:     status,
	})
	if err != nil {
		t.Fatalf("SaveBlog: %v", err)
	}

	return blog
}

// SaveBlog генерирует ID и метки времени; документ читается обратно.
func TestSaveBlog_AndBlogByID(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	created := seedBlog(t, m, models.StatusPending)
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	got, err := m.BlogByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("BlogByID: %v", err)
	}
	if got.Title != created.Title || got.Status != models.StatusPending {
		t.Fatalf("mismatch: %+v", got)
	}

	// битый id -> ErrNotFound
	if _, err := m.BlogByID(ctx, "not-an-objectid"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// BlogsByStatus: фильтр по статусу и направление сортировки.
func TestBlogsByStatus(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	first := seedBlog(t, m, models.StatusPending)
	second := seedBlog(t, m, models.StatusPending)
	seedBlog(t, m, models.StatusApproved)

	asc, err := m.BlogsByStatus(ctx, models.StatusPending, models.ListOptions{Field: "created_at", Ascending: true})
	if err != nil {
		t.Fatalf("BlogsByStatus asc: %v", err)
	}
	if len(asc) != 2 {
		t.Fatalf("want 2 pending, got %d", len(asc))
	}
	if asc[0].ID != first.ID || asc[1].ID != second.ID {
		t.Fatalf("asc order mismatch: %s, %s", asc[0].ID, asc[1].ID)
	}

	desc, err := m.BlogsByStatus(ctx, models.StatusPending, models.ListOptions{Field: "created_at"})
	if err != nil {
		t.Fatalf("BlogsByStatus desc: %v", err)
	}
	if desc[0].ID != second.ID {
		t.Fatalf("desc order mismatch: %s", desc[0].ID)
	}
}

// UpdateBlog: частичное обновление, ResetStatus возвращает в pending.
func TestUpdateBlog(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	blog := seedBlog(t, m, models.StatusApproved)

	title := "new title"
	updated, err := m.UpdateBlog(ctx, blog.ID, storage.UpdateBlogFields{
		Title:       &title,
		ResetStatus: true,
	})
	if err != nil {
		t.Fatalf("UpdateBlog: %v", err)
	}

	if updated.Title != title {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Status != models.StatusPending {
		t.Fatalf("status not reset: %s", updated.Status)
	}
	if updated.Content != blog.Content {
		t.Fatalf("content must be untouched: %q", updated.Content)
	}
	if !updated.UpdatedAt.After(blog.UpdatedAt) {
		t.Fatalf("updated_at not bumped")
	}
}

// SetStatus: approve выставляет published_at, reject не трогает.
func TestSetStatus(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	blog := seedBlog(t, m, models.StatusPending)

	now := time.Now().UTC()
	approved, err := m.SetStatus(ctx, blog.ID, models.StatusApproved, &now)
	if err != nil {
		t.Fatalf("SetStatus approve: %v", err)
	}
	if approved.Status != models.StatusApproved || approved.PublishedAt == nil {
		t.Fatalf("approve mismatch: %+v", approved)
	}

	rejected, err := m.SetStatus(ctx, blog.ID, models.StatusRejected, nil)
	if err != nil {
		t.Fatalf("SetStatus reject: %v", err)
	}
	if rejected.Status != models.StatusRejected {
		t.Fatalf("reject mismatch: %s", rejected.Status)
	}
	// published_at сохраняется после reject
	if rejected.PublishedAt == nil {
		t.Fatal("published_at must survive reject")
	}
}

// DeleteBlog: удаление и повторное удаление.
func TestDeleteBlog(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	blog := seedBlog(t, m, models.StatusPending)

	if err := m.DeleteBlog(ctx, blog.ID); err != nil {
		t.Fatalf("DeleteBlog: %v", err)
	}

	if err := m.DeleteBlog(ctx, blog.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound on second delete, got %v", err)
	}
}

// IncrementViews срабатывает только на approved и атомарен под конкуренцией.
func TestIncrementViews(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	pending := seedBlog(t, m, models.StatusPending)
	if err := m.IncrementViews(ctx, pending.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound for pending, got %v", err)
	}

	blog := seedBlog(t, m, models.StatusApproved)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = m.IncrementViews(ctx, blog.ID)
		}()
	}
	wg.Wait()

	got, err := m.BlogByID(ctx, blog.ID)
	if err != nil {
		t.Fatalf("BlogByID: %v", err)
	}
	if got.Views != n {
		t.Fatalf("views: want %d, got %d", n, got.Views)
	}
}

// ToggleLike: идемпотентная пара лайк/анлайк, один пользователь — один лайк.
func TestToggleLike(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	blog := seedBlog(t, m, models.StatusApproved)
	user := uuid.New()

	liked, likes, err := m.ToggleLike(ctx, blog.ID, user)
	if err != nil {
		t.Fatalf("ToggleLike(1): %v", err)
	}
	if !liked || likes != 1 {
		t.Fatalf("want liked=true likes=1, got %v/%d", liked, likes)
	}

	liked, likes, err = m.ToggleLike(ctx, blog.ID, user)
	if err != nil {
		t.Fatalf("ToggleLike(2): %v", err)
	}
	if liked || likes != 0 {
		t.Fatalf("want liked=false likes=0, got %v/%d", liked, likes)
	}

	// несуществующая статья
	if _, _, err := m.ToggleLike(ctx, primitiveHexMissing, user); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// Конкурентные лайки разных пользователей не теряются.
func TestToggleLike_Concurrent(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	blog := seedBlog(t, m, models.StatusApproved)

	const n = 15
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _, _ = m.ToggleLike(ctx, blog.ID, uuid.New())
		}()
	}
	wg.Wait()

	got, err := m.BlogByID(ctx, blog.ID)
	if err != nil {
		t.Fatalf("BlogByID: %v", err)
	}
	if len(got.LikedBy) != n {
		t.Fatalf("likes: want %d, got %d", n, len(got.LikedBy))
	}
}

// AppendComment: генерация ID, рост счётчика, конкурентные вставки.
func TestAppendComment(t *testing.T) {
	m := mustNewMongo(t, newTestConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	blog := seedBlog(t, m, models.StatusApproved)

	comment, count, err := m.AppendComment(ctx, blog.ID, models.Comment{
		UserID:     uuid.New(),
		AuthorName: "bob",
		Text:       "first",
	})
	if err != nil {
		t.Fatalf("AppendComment: %v", err)
	}
	if comment.ID == "" || count != 1 {
		t.Fatalf("want id+count=1, got %q/%d", comment.ID, count)
	}

	const n = 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _, _ = m.AppendComment(ctx, blog.ID, models.Comment{
				UserID:     uuid.New(),
				AuthorName: "bob",
				Text:       "concurrent",
			})
		}()
	}
	wg.Wait()

	got, err := m.BlogByID(ctx, blog.ID)
	if err != nil {
		t.Fatalf("BlogByID: %v", err)
	}
	if len(got.Comments) != n+1 {
		t.Fatalf("comments: want %d, got %d", n+1, len(got.Comments))
	}
}

// primitiveHexMissing — валидный по формату, но отсутствующий в БД ObjectID.
const primitiveHexMissing = "aaaaaaaaaaaaaaaaaaaaaaaa"
