package middleware

// Тесты HTTP-мидлваров (internal/transport/http/middleware).

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/config"
)

// stubValidator — подменный валидатор токенов: "good" -> фиксированный UUID.
type stubValidator struct {
	userID uuid.UUID
}

func (v stubValidator) ValidateToken(token string) (uuid.UUID, error) {
	if token == "good" {
		return v.userID, nil
	}

	return uuid.Nil, errors.New("bad token")
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m1-end")
		})
	}

	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m2-end")
		})
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusNoContent)
	}), m1, m2)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusNoContent, w.Code)
}

// RequestID: входящий заголовок сохраняется, отсутствующий — генерируется.
func TestRequestID(t *testing.T) {
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// входящий id уважается
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "given-id")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, "given-id", w.Header().Get("X-Request-Id"))

	// отсутствующий — генерируется (32 hex-символа)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Len(t, w.Header().Get("X-Request-Id"), 32)
}

// Recover: паника в обработчике отдаёт 500 с JSON-телом, а не роняет сервер.
func TestRecover(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Success)
}

// Timeout: навешивает deadline; нулевое значение — no-op.
func TestTimeout(t *testing.T) {
	var hasDeadline bool
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	})

	Timeout(time.Second)(inner).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, hasDeadline)

	Timeout(0)(inner).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, hasDeadline)
}

// Auth в header-режиме: валидный Bearer кладёт актора в контекст,
// битый токен и отсутствие заголовка дают анонима.
func TestAuth_HeaderTransport(t *testing.T) {
	userID := uuid.New()
	cfg := config.AuthConfig{TokenTransport: config.TokenTransportHeader, CookieName: "token"}

	var got uuid.UUID
	h := Auth(stubValidator{userID: userID}, cfg)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = ActorFrom(r.Context())
	}))

	// валидный токен
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, userID, got)

	// битый токен -> аноним, запрос проходит
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, uuid.Nil, got)

	// без заголовка -> аноним
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, uuid.Nil, got)
}

// Auth в cookie-режиме: кука приоритетна, Bearer остаётся фолбэком.
func TestAuth_CookieTransport(t *testing.T) {
	userID := uuid.New()
	cfg := config.AuthConfig{TokenTransport: config.TokenTransportCookie, CookieName: "token"}

	var got uuid.UUID
	h := Auth(stubValidator{userID: userID}, cfg)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = ActorFrom(r.Context())
	}))

	// кука
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "good"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, userID, got)

	// фолбэк на Bearer без куки
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, userID, got)
}

// CORS: разрешённый Origin получает credentials-заголовки, чужой — нет;
// preflight завершается 204 без прохода в обработчик.
func TestCORS(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}

	var handled bool
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handled = true
		w.WriteHeader(http.StatusOK)
	}))

	// разрешённый origin
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	require.Contains(t, w.Header().Values("Vary"), "Origin")
	require.True(t, handled)

	// чужой origin: заголовков нет, но запрос не блокируется
	handled = false
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	require.True(t, handled)

	// preflight
	handled = false
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.False(t, handled)
}

// statusWriter фиксирует статус и объём ответа.
func TestStatusWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStatusWriter(rec)

	sw.WriteHeader(http.StatusTeapot)
	n, err := sw.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, http.StatusTeapot, sw.status)
	require.Equal(t, 5, sw.count)

	// статус по умолчанию выставляется при первой записи
	sw = newStatusWriter(httptest.NewRecorder())
	_, _ = sw.Write([]byte("x"))
	require.Equal(t, http.StatusOK, sw.status)
}
