package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Throttle ThrottleConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Image    ImageConfig
}

type AppConfig struct {
	Name           string
	Port           string `validate:"required,numeric"`
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host             string `validate:"required"`
	Port             string `validate:"required,numeric"`
	Name             string `validate:"required"`
	User             string `validate:"required"`
	Password         string
	SSLMode          string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns         int32  `validate:"min=1"`
	StatementTimeout time.Duration
	AutoMigrate      bool
}

type JWTConfig struct {
	Secret            string        `validate:"required"`
	Expiration        time.Duration `validate:"gt=0"`
	RefreshSecret     string
	RefreshExpiration time.Duration `validate:"gt=0"`
}

type ThrottleConfig struct {
	TTL   time.Duration `validate:"gt=0"`
	Limit int           `validate:"min=1"`
}

// StorageConfig points at an S3 compatible endpoint. An empty Endpoint disables uploads.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string `validate:"required_with=Endpoint"`
	UseSSL    bool
	PublicURL string
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

type ImageConfig struct {
	MaxWidth       int   `validate:"min=1"`
	Quality        int   `validate:"min=1,max=100"`
	UploadMaxBytes int64 `validate:"min=1"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "travel-agency")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_STATEMENT_TIMEOUT_MS", 5000)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("JWT_EXPIRATION", "24h")
	viper.SetDefault("JWT_REFRESH_EXPIRATION", "168h")
	viper.SetDefault("THROTTLE_TTL", 60)
	viper.SetDefault("THROTTLE_LIMIT", 100)
	viper.SetDefault("CACHE_TTL", "10m")
	viper.SetDefault("IMAGE_MAX_WIDTH", 1920)
	viper.SetDefault("IMAGE_QUALITY", 80)
	viper.SetDefault("UPLOAD_MAX_BYTES", 5<<20)

	// .env is optional in containers where everything comes from the environment
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			AllowedOrigins: splitList(viper.GetString("ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:             viper.GetString("DB_HOST"),
			Port:             viper.GetString("DB_PORT"),
			Name:             viper.GetString("DB_NAME"),
			User:             viper.GetString("DB_USER"),
			Password:         viper.GetString("DB_PASS"),
			SSLMode:          viper.GetString("DB_SSLMODE"),
			MaxConns:         viper.GetInt32("DB_MAX_CONNS"),
			StatementTimeout: time.Duration(viper.GetInt("DB_STATEMENT_TIMEOUT_MS")) * time.Millisecond,
			AutoMigrate:      viper.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:            viper.GetString("JWT_SECRET"),
			Expiration:        viper.GetDuration("JWT_EXPIRATION"),
			RefreshSecret:     viper.GetString("JWT_REFRESH_SECRET"),
			RefreshExpiration: viper.GetDuration("JWT_REFRESH_EXPIRATION"),
		},
		Throttle: ThrottleConfig{
			TTL:   time.Duration(viper.GetInt("THROTTLE_TTL")) * time.Second,
			Limit: viper.GetInt("THROTTLE_LIMIT"),
		},
		Storage: StorageConfig{
			Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
			AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			PublicURL: viper.GetString("STORAGE_PUBLIC_URL"),
		},
		Cache: CacheConfig{
			RedisURL: viper.GetString("REDIS_URL"),
			TTL:      viper.GetDuration("CACHE_TTL"),
		},
		Image: ImageConfig{
			MaxWidth:       viper.GetInt("IMAGE_MAX_WIDTH"),
			Quality:        viper.GetInt("IMAGE_QUALITY"),
			UploadMaxBytes: viper.GetInt64("UPLOAD_MAX_BYTES"),
		},
	}

	// refresh tokens fall back to the access secret when no dedicated one is configured
	if config.JWT.RefreshSecret == "" {
		config.JWT.RefreshSecret = config.JWT.Secret
	}

	if errs := ValidateStruct(config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", FormatValidationErrors(errs))
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
