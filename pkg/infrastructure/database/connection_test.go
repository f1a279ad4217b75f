package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/config"
)

func TestNewTestConnection_MigratesSchema(t *testing.T) {
	db, err := NewTestConnection()
	require.NoError(t, err)
	defer Close(db)

	for _, table := range []string{"sites", "stock_entries", "kits", "remaining_production", "production_units",
		"unit_budgets", "unit_items", "productions", "measurements", "contracts", "monthly_checklists"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestNewConnection_UnsupportedType(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Type: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
