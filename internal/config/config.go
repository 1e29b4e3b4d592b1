package config

import (
	"time"

	"github.com/korima-app/korima-backend/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Economy   EconomyConfig   `yaml:"economy"`
	Storage   StorageConfig   `yaml:"storage"`
	Metadata  MetadataConfig  `yaml:"metadata"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MigrateOnStart  bool          `yaml:"migrate_on_start" env:"SERVER_MIGRATE_ON_START" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"korima"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// EconomyConfig holds the points economy rules.
type EconomyConfig struct {
	MinOffer          int           `yaml:"min_offer"           env:"ECONOMY_MIN_OFFER"           env-default:"10"`
	MaxOffer          int           `yaml:"max_offer"           env:"ECONOMY_MAX_OFFER"           env-default:"50"`
	OfferStep         int           `yaml:"offer_step"          env:"ECONOMY_OFFER_STEP"          env-default:"5"`
	DefaultOffer      int           `yaml:"default_offer"       env:"ECONOMY_DEFAULT_OFFER"       env-default:"10"`
	DailyRequestQuota int           `yaml:"daily_request_quota" env:"ECONOMY_DAILY_REQUEST_QUOTA" env-default:"5"`
	InitialBalance    int           `yaml:"initial_balance"     env:"ECONOMY_INITIAL_BALANCE"     env-default:"100"`
	CheckInReward     int           `yaml:"checkin_reward"      env:"ECONOMY_CHECKIN_REWARD"      env-default:"10"`
	CheckInCooldown   time.Duration `yaml:"checkin_cooldown"    env:"ECONOMY_CHECKIN_COOLDOWN"    env-default:"24h"`
	RequestValidity   time.Duration `yaml:"request_validity"    env:"ECONOMY_REQUEST_VALIDITY"    env-default:"120h"`
	ResponseValidity  time.Duration `yaml:"response_validity"   env:"ECONOMY_RESPONSE_VALIDITY"   env-default:"168h"`
	DecisionRetention time.Duration `yaml:"decision_retention"  env:"ECONOMY_DECISION_RETENTION"  env-default:"24h"`
}

// Domain converts the configuration into the rules consumed by services.
func (c EconomyConfig) Domain() domain.Economy {
	return domain.Economy{
		MinOffer:          c.MinOffer,
		MaxOffer:          c.MaxOffer,
		OfferStep:         c.OfferStep,
		DefaultOffer:      c.DefaultOffer,
		DailyRequestQuota: c.DailyRequestQuota,
		InitialBalance:    c.InitialBalance,
		CheckInReward:     c.CheckInReward,
		CheckInCooldown:   c.CheckInCooldown,
		RequestValidity:   c.RequestValidity,
		ResponseValidity:  c.ResponseValidity,
		DecisionRetention: c.DecisionRetention,
	}
}

// StorageConfig selects and configures the blob store for uploaded files.
type StorageConfig struct {
	Backend        string        `yaml:"backend"          env:"STORAGE_BACKEND"          env-default:"local"`
	LocalDir       string        `yaml:"local_dir"        env:"STORAGE_LOCAL_DIR"        env-default:"./data/respuestas-docs"`
	FTPHost        string        `yaml:"ftp_host"         env:"STORAGE_FTP_HOST"`
	FTPPort        int           `yaml:"ftp_port"         env:"STORAGE_FTP_PORT"         env-default:"21"`
	FTPUser        string        `yaml:"ftp_user"         env:"STORAGE_FTP_USER"`
	FTPPassword    string        `yaml:"ftp_password"     env:"STORAGE_FTP_PASSWORD"`
	FTPBaseDir     string        `yaml:"ftp_base_dir"     env:"STORAGE_FTP_BASE_DIR"     env-default:"respuestas-docs"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" env:"STORAGE_MAX_UPLOAD_BYTES" env-default:"8388608"`
	SignedURLTTL   time.Duration `yaml:"signed_url_ttl"   env:"STORAGE_SIGNED_URL_TTL"   env-default:"1h"`
	PublicBaseURL  string        `yaml:"public_base_url"  env:"STORAGE_PUBLIC_BASE_URL"  env-default:"http://localhost:8080"`
}

// MetadataConfig configures the bibliographic lookups.
type MetadataConfig struct {
	CrossRefBaseURL  string        `yaml:"crossref_base_url"  env:"METADATA_CROSSREF_BASE_URL"  env-default:"https://api.crossref.org"`
	UnpaywallBaseURL string        `yaml:"unpaywall_base_url" env:"METADATA_UNPAYWALL_BASE_URL" env-default:"https://api.unpaywall.org/v2"`
	ContactEmail     string        `yaml:"contact_email"      env:"METADATA_CONTACT_EMAIL"      env-default:"contact@korima.app"`
	Timeout          time.Duration `yaml:"timeout"            env:"METADATA_TIMEOUT"            env-default:"10s"`
	SearchRows       int           `yaml:"search_rows"        env:"METADATA_SEARCH_ROWS"        env-default:"10"`
}

// RedisConfig configures realtime fan-out. An empty URL selects the
// in-process broker.
type RedisConfig struct {
	URL           string `yaml:"url"            env:"REDIS_URL"`
	ChannelPrefix string `yaml:"channel_prefix" env:"REDIS_CHANNEL_PREFIX" env-default:"notifications:"`
}

// Enabled reports whether a Redis URL was configured.
func (c RedisConfig) Enabled() bool { return c.URL != "" }

// RateLimitConfig holds per-client limits for sensitive routes.
type RateLimitConfig struct {
	AuthPerMinute     int `yaml:"auth_per_minute"     env:"RATE_LIMIT_AUTH_PER_MINUTE"     env-default:"10"`
	UploadPerMinute   int `yaml:"upload_per_minute"   env:"RATE_LIMIT_UPLOAD_PER_MINUTE"   env-default:"20"`
	MetadataPerMinute int `yaml:"metadata_per_minute" env:"RATE_LIMIT_METADATA_PER_MINUTE" env-default:"30"`
}
