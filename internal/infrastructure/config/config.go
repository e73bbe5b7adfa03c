package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`

	DB     DBConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Media  MediaConfig
	Import ImportConfig
}

type DBConfig struct {
	Driver          string        `env:"DB_DRIVER,            default=postgres"`
	DSN             string        `env:"DB_DSN,               default=host=localhost user=crm password=crm dbname=crm port=5432 sslmode=disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,    default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=30m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=crm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MediaConfig struct {
	Root          string `env:"MEDIA_ROOT,      default=./media"`
	URL           string `env:"MEDIA_URL,       default=/media"`
	MaxUploadSize string `env:"MAX_UPLOAD_SIZE, default=10M"`
}

type ImportConfig struct {
	StrictHeaders bool `env:"IMPORT_STRICT_HEADERS, default=false"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper processes the configuration from l without touching .env.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	return nil
}
