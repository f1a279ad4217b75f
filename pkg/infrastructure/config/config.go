package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Storage       StorageConfig       `mapstructure:"storage"`
	TOTVS         TOTVSConfig         `mapstructure:"totvs"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (OBRA_ prefix, highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/obra")
	}

	v.SetEnvPrefix("OBRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL is honoured without prefix, as most hosting platforms set it that way
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys registers every leaf key so AutomaticEnv values reach Unmarshal
// even when no config file declares them.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"server.address", "server.allowed_origins", "server.body_limit",
		"database.type", "database.url", "database.host", "database.port", "database.user",
		"database.password", "database.name", "database.sslmode", "database.path",
		"database.pool.max_open", "database.pool.max_idle", "database.pool.max_lifetime",
		"auth.jwt_secret",
		"storage.enabled", "storage.endpoint", "storage.region", "storage.access_key",
		"storage.secret_key", "storage.bucket", "storage.use_ssl", "storage.link_expiry",
		"totvs.base_url", "totvs.auth_token", "totvs.timeout", "totvs.rate_limit.requests",
		"totvs.rate_limit.burst", "totvs.cache.size", "totvs.cache.ttl",
		"notifications.contract_approval_url", "notifications.checklist_webhook_url",
		"notifications.approval_base_url", "notifications.timeout",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// MustLoadConfig loads configuration and panics on error (for use in main.go)
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
