package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/config"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Интеграционные тесты включаются переменной GO_TEST_INTEGRATION; без неё
// пакет выполняет только юнит-тесты (конвертеры, разбор URI).
// Адрес контейнера прокидывается в ENV DATABASE_URL, а каждый тест создаёт
// свою БД с уникальным именем (см. newTestConfig).
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	_ = os.Setenv("DATABASE_URL", uri)

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestConfig создаёт конфиг с отдельной тестовой БД.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	baseURL := os.Getenv("DATABASE_URL")
	if baseURL == "" {
		baseURL = "mongodb://localhost:27017"
	}

	dbName := "devnovate_test_" + uuid.New().String()
	if baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL + dbName
	} else {
		baseURL = baseURL + "/" + dbName
	}

	return &config.Config{
		DB: config.DBConfig{
			URL: baseURL,
		},
	}
}

// mustNewMongo создаёт подключение к тестовой БД и регистрирует очистку.
// Без GO_TEST_INTEGRATION интеграционный тест пропускается.
func mustNewMongo(t *testing.T, cfg *config.Config) *Mongo {
	t.Helper()

	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION to run mongo integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("cannot connect to MongoDB in container: %v (DATABASE_URL=%s)", err, cfg.DB.URL)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

// TestDatabaseFromURI — извлечение имени БД из URI с фолбэком на дефолт.
func TestDatabaseFromURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"with-db", "mongodb://localhost:27017/blogdb", "blogdb"},
		{"with-db-and-params", "mongodb://u:p@localhost:27017/blogdb?replicaSet=rs0", "blogdb"},
		{"no-db", "mongodb://localhost:27017", defaultDBName},
		{"trailing-slash", "mongodb://localhost:27017/", defaultDBName},
		{"garbage", "://broken", defaultDBName},
	}
	for _, tt := range tests {
		if got := databaseFromURI(tt.uri); got != tt.want {
			t.Errorf("%s: want %q, got %q", tt.name, tt.want, got)
		}
	}
}

// TestBlogRoundtrip — конвертация домен -> документ -> домен без потерь
// (с точностью до миллисекунд DateTime).
func TestBlogRoundtrip(t *testing.T) {
	now := toMS(time.Now())
	pub := now.Add(-time.Hour)

	in := models.Blog{
		Title:         "title",
		Content:       "content",
		Excerpt:       "excerpt",
		AuthorID:      uuid.New(),
		AuthorName:    "alice",
		Tags:          []string{"go", "mongodb"},
		FeaturedImage: "https://img.example.com/1.png",
		Status:        models.StatusApproved,
		Views:         7,
		PublishedAt:   &pub,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	out := toBlog(fromBlog(in))

	if out.Title != in.Title || out.Content != in.Content || out.Excerpt != in.Excerpt {
		t.Fatalf("content fields mismatch: %+v", out)
	}
	if out.AuthorID != in.AuthorID {
		t.Fatalf("author mismatch: want %s, got %s", in.AuthorID, out.AuthorID)
	}
	if out.Status != in.Status || out.Views != in.Views {
		t.Fatalf("status/views mismatch: %+v", out)
	}
	if out.PublishedAt == nil || !out.PublishedAt.Equal(pub) {
		t.Fatalf("published_at mismatch: %v", out.PublishedAt)
	}
}
