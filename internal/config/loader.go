package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var envKeys = []string{
	"APP_ENV", "PORT", "JWT_SECRET", "REQUEST_LOG", "ADMIN_EMAILS",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	"POSTGRES_URL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"SETTINGS_FILE", "DRAFT_TTL",
}

// Load reads configs/config.yaml (optional), then .env, then the process environment.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes an already populated viper instance. Environment variables win.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	env := v.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}
	v.SetDefault("APP_ENV", env)
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_LOG", env != "test")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SETTINGS_FILE", filepath.Join("config", "local.json"))
	v.SetDefault("DRAFT_TTL", time.Hour)
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "production" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret"
	}
	if cfg.DraftTTL <= 0 {
		return fmt.Errorf("DRAFT_TTL must be positive")
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0")
	}
	return nil
}

func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
