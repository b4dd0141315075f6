package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Upload UploadConfig
	Push   PushConfig
	AI     AIConfig
}

type AppConfig struct {
	Port    string
	Env     string
	BaseURL string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type UploadConfig struct {
	// Root directory for stored assets, served under /uploads.
	Dir string
}

type PushConfig struct {
	// Enabled toggles the outbound push relay; notifications are still
	// persisted when it is off.
	Enabled bool
	URL     string
	APIKey  string
	Timeout time.Duration
}

type AIConfig struct {
	// Base URL of the skin-image prediction server.
	URL     string
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	pushTimeout, err := time.ParseDuration(viper.GetString("PUSH_TIMEOUT"))
	if err != nil {
		pushTimeout = 5 * time.Second
	}

	aiTimeout, err := time.ParseDuration(viper.GetString("AI_TIMEOUT"))
	if err != nil {
		aiTimeout = 30 * time.Second
	}

	uploadDir := viper.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	config := &Config{
		App: AppConfig{
			Port:    viper.GetString("APP_PORT"),
			Env:     viper.GetString("APP_ENV"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Upload: UploadConfig{
			Dir: uploadDir,
		},
		Push: PushConfig{
			Enabled: viper.GetBool("PUSH_ENABLED"),
			URL:     viper.GetString("PUSH_URL"),
			APIKey:  viper.GetString("PUSH_API_KEY"),
			Timeout: pushTimeout,
		},
		AI: AIConfig{
			URL:     viper.GetString("AI_URL"),
			Timeout: aiTimeout,
		},
	}

	return config, nil
}
