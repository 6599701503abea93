package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "config/local.yml"

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	Affiliate  `yaml:"affiliate"`
	Auth       `yaml:"auth"`
	Analytics  `yaml:"analytics"`
	UserAgent  `yaml:"user_agent"`
}

// HTTPServer holds HTTP listener configuration.
type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://127.0.0.1:3000"`
	// TrustProxyHeaders keys per-client limits on X-Forwarded-For and friends.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers" env:"HTTP_TRUST_PROXY_HEADERS" env-default:"false"`
}

// Database holds PostgreSQL connection settings.
type Database struct {
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
	DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"dealbies"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	SeedData        bool   `yaml:"seed_data" env:"DB_SEED_DATA" env-default:"true"`
	LogQueries      bool   `yaml:"log_queries" env:"DB_LOG_QUERIES" env-default:"false"`
}

// Affiliate holds the static values appended to partner merchant URLs.
type Affiliate struct {
	AmazonTag   string `yaml:"amazon_tag" env:"AFFILIATE_AMAZON_TAG" env-default:"dealbies-21"`
	AffiliateID string `yaml:"affiliate_id" env:"AFFILIATE_ID" env-default:"dealbies"`
}

// Auth holds settings for verifying identity provider tokens.
type Auth struct {
	JWTSecret     string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-default:"change-me"`
	Issuer        string `yaml:"issuer" env:"AUTH_ISSUER" env-default:"dealbies-idp"`
	SessionCookie string `yaml:"session_cookie" env:"AUTH_SESSION_COOKIE" env-default:"dealbies_session"`
}

// Analytics controls how click rows are written.
type Analytics struct {
	Async         bool          `yaml:"async" env:"ANALYTICS_ASYNC" env-default:"false"`
	Workers       int           `yaml:"workers" env:"ANALYTICS_WORKERS" env-default:"3"`
	BufferSize    int           `yaml:"buffer_size" env:"ANALYTICS_BUFFER_SIZE" env-default:"1000"`
	RetryAttempts int           `yaml:"retry_attempts" env:"ANALYTICS_RETRY_ATTEMPTS" env-default:"3"`
	RetryDelay    time.Duration `yaml:"retry_delay" env:"ANALYTICS_RETRY_DELAY" env-default:"1s"`
	IngestRPS     float64       `yaml:"ingest_rps" env:"ANALYTICS_INGEST_RPS" env-default:"5"`
	IngestBurst   int           `yaml:"ingest_burst" env:"ANALYTICS_INGEST_BURST" env-default:"20"`
}

// UserAgent points at an optional uap-core regexes file.
type UserAgent struct {
	RegexesPath string `yaml:"regexes_path" env:"UA_REGEXES_PATH" env-default:""`
}

// Load reads configuration from the YAML file at path, falling back to
// environment variables alone when the file does not exist.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config from environment: %w", err)
	}
	return &cfg, nil
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}

	return cfg
}
