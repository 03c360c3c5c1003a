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

const (
	StoreBackendREST  = "rest"
	StoreBackendMongo = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Operator OperatorConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Google   GoogleConfig
}

type OperatorConfig struct {
	JWTSecret    string        `env:"JWT_SECRET, required"`
	Username     string        `env:"OPERATOR_USERNAME, default=operator"`
	Email        string        `env:"OPERATOR_EMAIL"`
	PasswordHash string        `env:"OPERATOR_PASSWORD_HASH, required"`
	TokenTTL     time.Duration `env:"TOKEN_TTL, default=12h"`
}

type StoreConfig struct {
	Backend string        `env:"STORE_BACKEND,  default=rest"`
	BaseURL string        `env:"STORE_BASE_URL, default=http://localhost:5000/api"`
	Timeout time.Duration `env:"STORE_TIMEOUT,  default=15s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=recruit_mailer"`
}

// RedisConfig enables the shared in-flight guard and token store. An empty
// address keeps both in process memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type GoogleConfig struct {
	ClientID        string        `env:"GOOGLE_CLIENT_ID"`
	ClientSecret    string        `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL     string        `env:"GOOGLE_REDIRECT_URL, default=http://localhost:8080/mail/oauth/callback"`
	GmailEndpoint   string        `env:"GMAIL_ENDPOINT"`
	AuthFlowTimeout time.Duration `env:"AUTH_FLOW_TIMEOUT, default=5m"`
}

// IsDevelopment reports whether pretty logs and other local defaults apply.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if c.Operator.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must not be empty")
	}
	switch c.Store.Backend {
	case StoreBackendREST:
		if c.Store.BaseURL == "" {
			return errors.New("config: STORE_BASE_URL is required for the rest backend")
		}
	case StoreBackendMongo:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}

// Load reads an optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
