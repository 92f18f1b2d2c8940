package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryContainsAllTables(t *testing.T) {
	reg := NewRegistry()

	var names []string
	for _, table := range reg.Tables() {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"users", "categories", "products", "orders", "order_items"}, names)
}

func TestUsersTableColumns(t *testing.T) {
	reg := NewRegistry()
	users, ok := reg.Table("users")
	require.True(t, ok)

	var cols []string
	for _, c := range users.Columns {
		cols = append(cols, c.Name)
	}
	assert.Equal(t, []string{
		"id", "fullname", "email", "hashed_password", "is_admin", "is_active", "created_at",
	}, cols)
	assert.Empty(t, users.ForeignKeys)
}

func TestEmailIndexedButBooleanDefaultsOff(t *testing.T) {
	reg := NewRegistry()
	users, _ := reg.Table("users")

	byName := map[string]Column{}
	for _, c := range users.Columns {
		byName[c.Name] = c
	}

	assert.True(t, byName["email"].Indexed)
	assert.True(t, byName["fullname"].Indexed)
	assert.Equal(t, "false", byName["is_admin"].Default)
	assert.Equal(t, "false", byName["is_active"].Default)
	assert.Equal(t, "now()", byName["created_at"].Default)
}

func TestOrderItemsForeignKeys(t *testing.T) {
	reg := NewRegistry()
	items, ok := reg.Table("order_items")
	require.True(t, ok)

	require.Len(t, items.ForeignKeys, 2)
	assert.Equal(t, ForeignKey{Column: "order_id", RefTable: "orders", RefColumn: "id"}, items.ForeignKeys[0])
	assert.Equal(t, ForeignKey{Column: "product_id", RefTable: "products", RefColumn: "id"}, items.ForeignKeys[1])
}

func TestMonetaryColumnsAreFixedPoint(t *testing.T) {
	reg := NewRegistry()

	for _, spec := range []struct{ table, column string }{
		{"products", "price"},
		{"orders", "total_price"},
		{"order_items", "price_at_purchase"},
	} {
		table, ok := reg.Table(spec.table)
		require.True(t, ok, spec.table)
		found := false
		for _, c := range table.Columns {
			if c.Name == spec.column {
				assert.Equal(t, "numeric(10,2)", c.Type, "%s.%s", spec.table, spec.column)
				found = true
			}
		}
		assert.True(t, found, "%s.%s missing", spec.table, spec.column)
	}
}

func TestRegisterAppends(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Table{Name: "audit_log"})

	got, ok := reg.Table("audit_log")
	require.True(t, ok)
	assert.Equal(t, "audit_log", got.Name)
}
