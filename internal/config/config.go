package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig is the PostgreSQL connection and pool configuration.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig points at the S3-compatible avatar store. Avatar uploads are disabled
// when Endpoint is empty.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether object storage has been configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret            string
	JWTIssuer            string
	AccessTokenTTLMin    int
	RefreshTokenTTLHours int
	BcryptCost           int
}

// AccessTokenTTL returns the access token lifetime.
func (c AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMin) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime.
func (c AuthConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLHours) * time.Hour
}

// RedisConfig holds the connection settings of the access-token revocation store.
// Revocation is kept in-process only when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AppConfig is everything the server reads from its environment.
type AppConfig struct {
	AppHost  string
	Port     string
	LogLevel string
	Timezone string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Redis    RedisConfig
}

// Load builds the configuration from environment variables. Missing variables keep their
// defaults; cmd/api imports godotenv/autoload so a local .env file is honoured too.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		Database: loadDatabase(),
		MinIO:    loadMinIO(),
		Auth:     loadAuth(),
		Redis:    loadRedis(),
	}
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Host:               getEnv("DB_HOST", ""),
		Port:               getEnv("DB_PORT", "5432"),
		User:               getEnv("DB_USER", ""),
		Password:           getEnv("DB_PASSWORD", ""),
		Name:               getEnv("DB_NAME", ""),
		SSLMode:            getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
	}
}

func loadMinIO() MinIOConfig {
	return MinIOConfig{
		Endpoint:  getEnv("MINIO_ENDPOINT", ""),
		AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		SecretKey: getEnv("MINIO_SECRET_KEY", ""),
		Bucket:    getEnv("MINIO_BUCKET", "avatars"),
		UseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
}

func loadAuth() AuthConfig {
	return AuthConfig{
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTIssuer:            getEnv("JWT_ISSUER", "orion"),
		AccessTokenTTLMin:    getEnvInt("JWT_ACCESS_TTL_MINUTES", 60),
		RefreshTokenTTLHours: getEnvInt("REFRESH_TOKEN_TTL_HOURS", 168),
		BcryptCost:           getEnvInt("BCRYPT_COST", 10),
	}
}

func loadRedis() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

// Validate checks the settings the server cannot start without.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
		errs = append(errs, errors.New("DB_HOST, DB_USER and DB_NAME are required"))
	}
	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if c.Auth.AccessTokenTTLMin <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL_MINUTES must be positive"))
	}
	if c.Auth.RefreshTokenTTLHours <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_TTL_HOURS must be positive"))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone, falling back to UTC on unknown names.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	return getEnvAs(key, def, func(v string) (string, error) { return v, nil })
}

func getEnvBool(key string, def bool) bool {
	return getEnvAs(key, def, strconv.ParseBool)
}

func getEnvInt(key string, def int) int {
	return getEnvAs(key, def, strconv.Atoi)
}

// getEnvAs parses key with parse; unset, empty or malformed values yield def.
func getEnvAs[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}
