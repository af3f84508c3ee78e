package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	StaticDir string `env:"STATIC_DIR, default=./web"`

	Auth   AuthConfig
	Stores StoresConfig
	Orders OrdersConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=2h"`
	// PasswordScheme is "bcrypt" or "plain". plain stores raw passwords and
	// only exists for legacy demo parity.
	PasswordScheme string `env:"PASSWORD_SCHEME, default=bcrypt"`
	BcryptCost     int    `env:"BCRYPT_COST,     default=10"`
	// Clients lists application credentials as id:secret[:name] entries.
	Clients              []string `env:"CLIENT_CREDENTIALS, default=123:abc:web-client"`
	RequireClientOnLogin bool     `env:"REQUIRE_CLIENT_ON_LOGIN, default=false"`
}

type StoresConfig struct {
	Users string `env:"USER_STORE, default=memory"`
	Carts string `env:"CART_STORE, default=memory"`
}

type OrdersConfig struct {
	Workers int `env:"ORDER_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shop"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	CartTTL  time.Duration `env:"REDIS_CART_TTL, default=168h"`
}

// Load reads an optional dotenv file and then the process environment.
// Values already present in the environment win over the file.
func Load(ctx context.Context, envFile string) (*Config, error) {
	if envFile != "" {
		// A missing file is normal outside local development.
		_ = godotenv.Load(envFile)
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Stores.Users {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("USER_STORE must be %q or %q, got %q", StoreMemory, StoreMongo, c.Stores.Users)
	}
	switch c.Stores.Carts {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("CART_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.Stores.Carts)
	}
	if _, err := c.ClientCredentials(); err != nil {
		return err
	}
	return nil
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// ClientCredentials parses Auth.Clients.
func (c *Config) ClientCredentials() ([]domain.ClientCredential, error) {
	out := make([]domain.ClientCredential, 0, len(c.Auth.Clients))
	for _, entry := range c.Auth.Clients {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("CLIENT_CREDENTIALS entry %q must be id:secret[:name]", entry)
		}
		cred := domain.ClientCredential{ClientID: parts[0], ClientSecret: parts[1], Name: parts[0]}
		if len(parts) == 3 && parts[2] != "" {
			cred.Name = parts[2]
		}
		out = append(out, cred)
	}
	return out, nil
}
