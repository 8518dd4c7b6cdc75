package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		Timezone  string `env:"APP_TIMEZONE" env-default:"UTC"`
	}
	Storage struct {
		Driver     string `env:"STORAGE_DRIVER" env-default:"postgres"`
		SQLitePath string `env:"SQLITE_PATH" env-default:"./data/calendar.db"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
	Instagram struct {
		User            string        `env:"INSTAGRAM_USER"`
		Pass            string        `env:"INSTAGRAM_PASS"`
		Cookie          string        `env:"INSTAGRAM_COOKIE"`
		SessionPath     string        `env:"INSTAGRAM_SESSION_PATH" env-default:"~/.insta-event-calendar/cookies.json"`
		Headless        bool          `env:"INSTAGRAM_HEADLESS" env-default:"true"`
		PageTimeout     time.Duration `env:"INSTAGRAM_PAGE_TIMEOUT" env-default:"30s"`
		LoginWait       time.Duration `env:"INSTAGRAM_LOGIN_WAIT" env-default:"5s"`
		ValidateOnStart bool          `env:"INSTAGRAM_VALIDATE_ON_START" env-default:"false"`
	}
	Scraper struct {
		Workers      int           `env:"SCRAPER_WORKERS" env-default:"3"`
		MaxPosts     int           `env:"SCRAPER_MAX_POSTS" env-default:"12"`
		RetryDelay   time.Duration `env:"SCRAPER_RETRY_DELAY" env-default:"5s"`
		Interval     time.Duration `env:"SCRAPER_INTERVAL" env-default:"6h"`
		ManifestPath string        `env:"SCRAPER_MANIFEST_PATH" env-default:"./club_manifest.yaml"`
	}
	Completion struct {
		Endpoint          string        `env:"COMPLETION_ENDPOINT" env-default:"https://api.openai.com/v1/chat/completions"`
		APIKey            string        `env:"COMPLETION_API_KEY"`
		Model             string        `env:"COMPLETION_MODEL" env-default:"gpt-4o-mini"`
		Temperature       float64       `env:"COMPLETION_TEMPERATURE" env-default:"0.5"`
		Timeout           time.Duration `env:"COMPLETION_TIMEOUT" env-default:"45s"`
		RequestsPerMinute int           `env:"COMPLETION_REQUESTS_PER_MINUTE" env-default:"60"`
	}
	Extractor struct {
		Workers    int           `env:"EXTRACTOR_WORKERS" env-default:"3"`
		RetryDelay time.Duration `env:"EXTRACTOR_RETRY_DELAY" env-default:"2s"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the lib/pq connection string used by migrations.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// Location resolves App.Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
