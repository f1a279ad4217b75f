package commands

import (
	"context"
	"fmt"

	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/config"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/database"
)

// MigrateConfig holds configuration for the schema migration command
type MigrateConfig struct {
	ConfigFile string
	Verbose    bool
}

// MigrateCommand creates or updates the database schema
type MigrateCommand struct {
	config MigrateConfig
}

func NewMigrateCommand(config MigrateConfig) *MigrateCommand {
	return &MigrateCommand{config: config}
}

func (c *MigrateCommand) Execute(_ context.Context) error {
	cfg, err := config.LoadConfig(c.config.ConfigFile)
	if err != nil {
		return err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Schema migrated (%s)\n", cfg.Database.Type)
	}
	return nil
}
