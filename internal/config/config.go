package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Upload UploadConfig
	Vision VisionConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings. An empty Bucket disables object storage;
// uploads then fall back to self-contained data: URIs.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// UploadConfig holds check image upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// VisionProviderConfig holds settings for a single vision model provider.
type VisionProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// VisionConfig holds vision model settings with optional fallback provider.
type VisionConfig struct {
	Primary   VisionProviderConfig `mapstructure:"primary"`
	Secondary VisionProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (v *VisionConfig) SecondaryConfig() *VisionProviderConfig {
	if v.Secondary.Provider != "" {
		return &v.Secondary
	}
	return nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the CHECKDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHECKDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "checkdesk")
	v.SetDefault("db.password", "checkdesk_secret")
	v.SetDefault("db.name", "checkdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 604800)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// Vision defaults
	v.SetDefault("vision.primary.provider", "openai")
	v.SetDefault("vision.primary.api_key", "")
	v.SetDefault("vision.primary.default_model", "gpt-4o")
	v.SetDefault("vision.primary.timeout_secs", 120)
	v.SetDefault("vision.secondary.provider", "")
	v.SetDefault("vision.secondary.api_key", "")
	v.SetDefault("vision.secondary.default_model", "")
	v.SetDefault("vision.secondary.timeout_secs", 120)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "CHECKDESK_SERVER_PORT",
		"server.read_timeout":            "CHECKDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "CHECKDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":             "CHECKDESK_SERVER_ENVIRONMENT",
		"db.host":                        "CHECKDESK_DB_HOST",
		"db.port":                        "CHECKDESK_DB_PORT",
		"db.user":                        "CHECKDESK_DB_USER",
		"db.password":                    "CHECKDESK_DB_PASSWORD",
		"db.name":                        "CHECKDESK_DB_NAME",
		"db.sslmode":                     "CHECKDESK_DB_SSLMODE",
		"db.max_open":                    "CHECKDESK_DB_MAX_OPEN",
		"db.max_idle":                    "CHECKDESK_DB_MAX_IDLE",
		"s3.region":                      "CHECKDESK_S3_REGION",
		"s3.bucket":                      "CHECKDESK_S3_BUCKET",
		"s3.endpoint":                    "CHECKDESK_S3_ENDPOINT",
		"s3.access_key":                  "CHECKDESK_S3_ACCESS_KEY",
		"s3.secret_key":                  "CHECKDESK_S3_SECRET_KEY",
		"s3.presign_expiry":              "CHECKDESK_S3_PRESIGN_EXPIRY",
		"upload.max_file_size_mb":        "CHECKDESK_UPLOAD_MAX_FILE_SIZE_MB",
		"vision.primary.provider":        "CHECKDESK_VISION_PRIMARY_PROVIDER",
		"vision.primary.api_key":         "CHECKDESK_VISION_PRIMARY_API_KEY",
		"vision.primary.default_model":   "CHECKDESK_VISION_PRIMARY_DEFAULT_MODEL",
		"vision.primary.timeout_secs":    "CHECKDESK_VISION_PRIMARY_TIMEOUT_SECS",
		"vision.secondary.provider":      "CHECKDESK_VISION_SECONDARY_PROVIDER",
		"vision.secondary.api_key":       "CHECKDESK_VISION_SECONDARY_API_KEY",
		"vision.secondary.default_model": "CHECKDESK_VISION_SECONDARY_DEFAULT_MODEL",
		"vision.secondary.timeout_secs":  "CHECKDESK_VISION_SECONDARY_TIMEOUT_SECS",
		"log.level":                      "CHECKDESK_LOG_LEVEL",
		"log.format":                     "CHECKDESK_LOG_FORMAT",
		"cors.allowed_origins":           "CHECKDESK_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CHECKDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CHECKDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Vision = VisionConfig{
		Primary: VisionProviderConfig{
			Provider:     v.GetString("vision.primary.provider"),
			APIKey:       v.GetString("vision.primary.api_key"),
			DefaultModel: v.GetString("vision.primary.default_model"),
			TimeoutSecs:  v.GetInt("vision.primary.timeout_secs"),
		},
		Secondary: VisionProviderConfig{
			Provider:     v.GetString("vision.secondary.provider"),
			APIKey:       v.GetString("vision.secondary.api_key"),
			DefaultModel: v.GetString("vision.secondary.default_model"),
			TimeoutSecs:  v.GetInt("vision.secondary.timeout_secs"),
		},
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

// Validate checks that variables without usable defaults are set. Called
// by the server entrypoint; cmd/migrate only needs the DB section.
func (c *Config) Validate() error {
	if c.Vision.Primary.APIKey == "" {
		return fmt.Errorf("missing required environment variable: CHECKDESK_VISION_PRIMARY_API_KEY")
	}
	if c.Vision.Secondary.Provider != "" && c.Vision.Secondary.APIKey == "" {
		return fmt.Errorf("missing required environment variable: CHECKDESK_VISION_SECONDARY_API_KEY")
	}
	return nil
}
