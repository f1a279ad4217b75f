package config

import "time"

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Address        string   `mapstructure:"address" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	BodyLimit      int      `mapstructure:"body_limit" validate:"min=1"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Connection type: "postgres" or "sqlite"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// Full connection URL (takes precedence over individual fields)
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// SQLite file path or ":memory:"
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// AuthConfig holds the secret used to verify bearer tokens issued by the identity provider
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// StorageConfig holds S3-compatible object storage settings for checklist documents
type StorageConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Endpoint   string        `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Region     string        `mapstructure:"region"`
	AccessKey  string        `mapstructure:"access_key" validate:"required_if=Enabled true"`
	SecretKey  string        `mapstructure:"secret_key" validate:"required_if=Enabled true"`
	Bucket     string        `mapstructure:"bucket" validate:"required_if=Enabled true"`
	UseSSL     bool          `mapstructure:"use_ssl"`
	LinkExpiry time.Duration `mapstructure:"link_expiry"`
}

// TOTVSConfig holds the ERP retail API settings used by the stock-level proxy.
// Empty credentials leave the proxy disabled.
type TOTVSConfig struct {
	BaseURL   string          `mapstructure:"base_url" validate:"omitempty,url"`
	AuthToken string          `mapstructure:"auth_token"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

// Configured reports whether both the base URL and the token are present
func (c TOTVSConfig) Configured() bool {
	return c.BaseURL != "" && c.AuthToken != ""
}

// RateLimitConfig holds outbound rate limiting settings
type RateLimitConfig struct {
	Requests int `mapstructure:"requests" validate:"min=1"`
	Burst    int `mapstructure:"burst" validate:"min=1"`
}

// CacheConfig holds response cache settings
type CacheConfig struct {
	Size int           `mapstructure:"size" validate:"min=0"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// NotificationsConfig holds the webhook endpoints of the approval flows.
// An empty URL disables that notification.
type NotificationsConfig struct {
	ContractApprovalURL string        `mapstructure:"contract_approval_url" validate:"omitempty,url"`
	ChecklistWebhookURL string        `mapstructure:"checklist_webhook_url" validate:"omitempty,url"`
	ApprovalBaseURL     string        `mapstructure:"approval_base_url" validate:"omitempty,url"`
	Timeout             time.Duration `mapstructure:"timeout"`
}
