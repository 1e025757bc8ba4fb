package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Issuer         string `env:"CLUB_ISSUER"           envDefault:"clubhouse"`
	SigningKeyFile string `env:"CLUB_SIGNING_KEY_FILE"` // Optional: PKCS8 Ed25519 PEM, created when missing; keys are ephemeral when unset
	NumKeys        int    `env:"CLUB_NUM_KEYS"         envDefault:"1"`
	DatabaseFile   string `env:"CLUB_DATABASE_FILE"    envDefault:"clubhouse.db"`
	PepperFile     string `env:"CLUB_PEPPER_FILE"      envDefault:"pepper"`

	BlobDir     string `env:"CLUB_BLOB_DIR"      envDefault:"./blobs"`
	BlobBaseURL string `env:"CLUB_BLOB_BASE_URL" envDefault:"/v1/blobs"`

	RedisAddr   string `env:"REDIS_ADDR"` // Optional: empty selects the in-process event bus
	EventStream string `env:"CLUB_EVENT_STREAM" envDefault:"club:memberships"`

	LowStockThreshold decimal.Decimal `env:"CLUB_LOW_STOCK_THRESHOLD" envDefault:"20"`
	POSSessionTTL     time.Duration   `env:"CLUB_POS_SESSION_TTL"     envDefault:"30m"`
	POSMaxSessions    int             `env:"CLUB_POS_MAX_SESSIONS"    envDefault:"1024"`
	AccessTokenTTL    time.Duration   `env:"ACCESS_TOKEN_TTL"         envDefault:"1h"`
	MaxPhotoBytes     int64           `env:"MAX_PHOTO_BYTES"          envDefault:"5242880"` // 5 MiB

	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Issuer == "":
		return errors.New("config: CLUB_ISSUER must not be empty")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	case c.POSMaxSessions <= 0:
		return errors.New("config: CLUB_POS_MAX_SESSIONS must be positive")
	case c.MaxPhotoBytes <= 0:
		return errors.New("config: MAX_PHOTO_BYTES must be positive")
	case c.LowStockThreshold.IsNegative():
		return errors.New("config: CLUB_LOW_STOCK_THRESHOLD must not be negative")
	}
	return nil
}
