package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":3000"
	}
	if cfg.Server.BodyLimit == 0 {
		cfg.Server.BodyLimit = 20 * 1024 * 1024
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "obra.db"
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == 0 {
			cfg.Database.Port = 5432
		}
		if cfg.Database.Name == "" {
			cfg.Database.Name = "obra"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Storage defaults
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "checklists"
	}
	if cfg.Storage.LinkExpiry == 0 {
		cfg.Storage.LinkExpiry = 24 * time.Hour
	}

	// TOTVS defaults
	if cfg.TOTVS.Timeout == 0 {
		cfg.TOTVS.Timeout = 30 * time.Second
	}
	if cfg.TOTVS.RateLimit.Requests == 0 {
		cfg.TOTVS.RateLimit.Requests = 5
	}
	if cfg.TOTVS.RateLimit.Burst == 0 {
		cfg.TOTVS.RateLimit.Burst = 10
	}
	if cfg.TOTVS.Cache.Size == 0 {
		cfg.TOTVS.Cache.Size = 256
	}
	if cfg.TOTVS.Cache.TTL == 0 {
		cfg.TOTVS.Cache.TTL = time.Minute
	}

	// Notification defaults
	if cfg.Notifications.Timeout == 0 {
		cfg.Notifications.Timeout = 10 * time.Second
	}
}
