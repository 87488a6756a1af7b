// config реализует конфигурацию blog-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Допустимые значения Auth.TokenTransport.
const (
	TokenTransportCookie = "cookie"
	TokenTransportHeader = "header"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	DB       DBConfig       `yaml:"db"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Limits   LimitsConfig   `yaml:"limits"`
	Trending TrendingConfig `yaml:"trending"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// HTTPConfig — публичный REST-сервер.
type HTTPConfig struct {
	Host     string `yaml:"host"      env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port     string `yaml:"port"      env:"HTTP_PORT" env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для health/metrics.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9090"`
}

// Addr возвращает адрес в формате host:port.
func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// AuthConfig — выпуск и проверка токенов.
// TokenTransport выбирает, где клиент носит токен: "cookie" (HttpOnly-кука
// token, с фолбэком на Authorization) либо "header" (только Authorization).
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"      env:"JWT_SECRET" env-required:"true"`
	TokenTTL       time.Duration `yaml:"token_ttl"       env:"TOKEN_TTL"  env-default:"168h"`
	Issuer         string        `yaml:"issuer"          env:"JWT_ISSUER" env-default:"devnovate-blogs"`
	TokenTransport string        `yaml:"token_transport" env:"TOKEN_TRANSPORT" env-default:"cookie"`
	CookieName     string        `yaml:"cookie_name"     env:"COOKIE_NAME"     env-default:"token"`
	CookieSecure   bool          `yaml:"cookie_secure"   env:"COOKIE_SECURE"   env-default:"true"`
}

// CORSConfig — allow-list источников для браузерных клиентов.
// Пустой список запрещает кросс-доменные запросы (same-origin и curl работают всегда).
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// LimitsConfig — границы размеров пользовательского ввода.
type LimitsConfig struct {
	TitleMax   int `yaml:"title_max"   env:"TITLE_MAX"   env-default:"200"`
	ExcerptMax int `yaml:"excerpt_max" env:"EXCERPT_MAX" env-default:"500"`
	CommentMax int `yaml:"comment_max" env:"COMMENT_MAX" env-default:"1000"`
	BioMax     int `yaml:"bio_max"     env:"BIO_MAX"     env-default:"500"`
}

// TrendingConfig — опциональный Redis-кэш трендовой выдачи.
// Пустой CacheURL отключает кэш: ранжирование пересчитывается на каждый запрос.
type TrendingConfig struct {
	CacheURL string        `yaml:"cache_url" env:"TRENDING_CACHE_URL"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"TRENDING_CACHE_TTL" env-default:"30s"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Auth.TokenTTL < time.Minute {
		return fmt.Errorf("auth.token_ttl must be at least 1m")
	}

	switch c.Auth.TokenTransport {
	case TokenTransportCookie, TokenTransportHeader:
	default:
		return fmt.Errorf("auth.token_transport must be %q or %q", TokenTransportCookie, TokenTransportHeader)
	}

	if c.Limits.TitleMax <= 0 {
		return fmt.Errorf("limits.title_max must be > 0")
	}

	if c.Limits.ExcerptMax <= 0 {
		return fmt.Errorf("limits.excerpt_max must be > 0")
	}

	if c.Limits.CommentMax <= 0 {
		return fmt.Errorf("limits.comment_max must be > 0")
	}

	if c.Limits.BioMax <= 0 {
		return fmt.Errorf("limits.bio_max must be > 0")
	}

	if c.Trending.CacheURL != "" && c.Trending.CacheTTL <= 0 {
		return fmt.Errorf("trending.cache_ttl must be > 0 when cache is enabled")
	}

	return nil
}
