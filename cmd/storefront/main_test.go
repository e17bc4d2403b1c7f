package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestMigrateSeedStatusAgainstFileDB(t *testing.T) {
	t.Cleanup(config.Reset)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	dsn := filepath.Join(dir, "shop.db")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_DRIVER=sqlite\nDATABASE_DSN="+dsn+"\nLOG_LEVEL=error\n"), 0o644))

	flags := []string{"--env-file", envFile, "--config", filepath.Join(dir, "missing.json")}

	out := execute(t, append([]string{"migrate"}, flags...)...)
	assert.Contains(t, out, "Migrated:  20260101000000_create_customer_table")
	assert.Contains(t, out, "3 migration(s) applied")

	out = execute(t, append([]string{"seed"}, flags...)...)
	assert.Contains(t, out, "Running seeder: catalogue … done")

	out = execute(t, append([]string{"migrate:status"}, flags...)...)
	assert.Contains(t, out, "20260101000002_create_orders_table")
	assert.NotContains(t, out, "Pending")

	out = execute(t, append([]string{"migrate:rollback"}, flags...)...)
	assert.Contains(t, out, "3 migration(s) rolled back")
}

func TestRouteList(t *testing.T) {
	t.Cleanup(config.Reset)
	out := execute(t, "route:list", "--env-file", filepath.Join(t.TempDir(), "none"))
	assert.Contains(t, out, "METHOD")
	assert.Contains(t, out, "/order_items/{id}")
	assert.Contains(t, out, "customer.destroy")
}
