package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port         int           `env:"PORT" envDefault:"8080"`
		Origin       string        `env:"ORIGIN" envDefault:"http://localhost:3000"`
		ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	}

	Postgres struct {
		Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port            int           `env:"POSTGRES_PORT" envDefault:"5432"`
		User            string        `env:"POSTGRES_USER" envDefault:"emko"`
		Password        string        `env:"POSTGRES_PASSWORD" envDefault:"emko"`
		Database        string        `env:"POSTGRES_DB" envDefault:"emko"`
		SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"20"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"1h"`
		AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Auth struct {
		JWTSecret    string        `env:"JWT_SECRET,required,notEmpty"`
		SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"720h"`
		MagicLinkTTL time.Duration `env:"MAGIC_LINK_TTL" envDefault:"15m"`
		// Page that receives ?token=... and exchanges it via /auth/verify
		MagicLinkBaseURL string   `env:"MAGIC_LINK_BASE_URL" envDefault:"http://localhost:3000/auth/callback"`
		AdminEmails      []string `env:"ADMIN_EMAILS" envSeparator:","`
		// Magic-link requests allowed per second per client IP, and burst
		LinkRate  float64 `env:"MAGIC_LINK_RATE" envDefault:"0.2"`
		LinkBurst int     `env:"MAGIC_LINK_BURST" envDefault:"3"`
	}

	Mail struct {
		Host     string `env:"SMTP_HOST" envDefault:""`
		Port     int    `env:"SMTP_PORT" envDefault:"587"`
		Username string `env:"SMTP_USERNAME" envDefault:""`
		Password string `env:"SMTP_PASSWORD" envDefault:""`
		From     string `env:"SMTP_FROM" envDefault:"EMKO <no-reply@emko.local>"`
	}

	Contact struct {
		OperatorPhone string `env:"OPERATOR_PHONE" envDefault:"905000000000"`
		ChatBaseURL   string `env:"CHAT_BASE_URL" envDefault:"https://wa.me"`
	}

	Moderation struct {
		BanCacheTTL time.Duration `env:"BAN_CACHE_TTL" envDefault:"30s"`
	}

	Listings struct {
		CacheTTL            time.Duration `env:"LISTINGS_CACHE_TTL" envDefault:"5s"`
		ExpirySweepInterval time.Duration `env:"FEATURE_EXPIRY_SWEEP_INTERVAL" envDefault:"1m"`
	}
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional; in production variables come from the environment
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) PostgresDSN() string {
	p := c.Postgres
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsAdminEmail reports whether email belongs to a configured administrator.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, admin := range c.Auth.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(admin), email) {
			return true
		}
	}
	return false
}
