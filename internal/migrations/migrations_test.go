package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukalink/duka_api/internal/models"
)

func TestUpFilesOrderedByVersion(t *testing.T) {
	ups, err := upFiles()
	require.NoError(t, err)
	require.Len(t, ups, 5)

	for i, f := range ups {
		assert.Equal(t, i+1, f.Version, f.Name)
	}
}

func TestScriptCreatesAllTables(t *testing.T) {
	script, err := Script(models.NewRegistry())
	require.NoError(t, err)

	for _, table := range []string{"users", "categories", "products", "orders", "order_items"} {
		assert.Contains(t, script, "CREATE TABLE "+table+" (")
	}

	// One transaction, with version bookkeeping so an online run afterwards
	// sees the schema as current.
	assert.True(t, strings.HasPrefix(script, "BEGIN;"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(script), "COMMIT;"))
	assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS schema_migrations")
	assert.Contains(t, script, "INSERT INTO schema_migrations (version, dirty) VALUES (5, false);")
}

func TestScriptDeclaresForeignKeysRestrict(t *testing.T) {
	script, err := Script(models.NewRegistry())
	require.NoError(t, err)

	assert.Contains(t, script, "REFERENCES categories (id) ON DELETE RESTRICT")
	assert.Contains(t, script, "REFERENCES users (id) ON DELETE RESTRICT")
	assert.Contains(t, script, "REFERENCES orders (id) ON DELETE RESTRICT")
	assert.Contains(t, script, "REFERENCES products (id) ON DELETE RESTRICT")
}

func TestScriptRefusesUncoveredTable(t *testing.T) {
	reg := models.NewRegistry()
	reg.Register(models.Table{Name: "warehouses"})

	_, err := Script(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warehouses")
}

func TestEmailIndexIsNotUnique(t *testing.T) {
	script, err := Script(models.NewRegistry())
	require.NoError(t, err)

	assert.Contains(t, script, "CREATE INDEX idx_users_email")
	assert.NotContains(t, script, "CREATE UNIQUE INDEX idx_users_email")
	// No unique constraint on email either; duplicates are a registration
	// layer concern.
	assert.NotContains(t, script, "email TEXT NOT NULL UNIQUE")
}
