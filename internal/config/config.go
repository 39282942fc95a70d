package config

import (
	"strings"
	"time"
)

type Config struct {
	AppEnv     string `mapstructure:"APP_ENV"`
	Port       string `mapstructure:"PORT"`
	JWTSecret  string `mapstructure:"JWT_SECRET"`
	RequestLog bool   `mapstructure:"REQUEST_LOG"`

	// Comma separated; accounts registered with these emails get the admin role.
	AdminEmails string `mapstructure:"ADMIN_EMAILS"`

	Log      LogConfig      `mapstructure:",squash"`
	Postgres PostgresConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`

	SettingsFile string        `mapstructure:"SETTINGS_FILE"`
	DraftTTL     time.Duration `mapstructure:"DRAFT_TTL"`
}

type LogConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
	Output string `mapstructure:"LOG_OUTPUT"`
}

type PostgresConfig struct {
	URL string `mapstructure:"POSTGRES_URL"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

func (c *Config) AdminEmailList() []string {
	var out []string
	for _, e := range strings.Split(c.AdminEmails, ",") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}
