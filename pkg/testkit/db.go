package testkit

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

var dbSeq atomic.Uint64

// NewDB opens a private in-memory SQLite database for t, applies the given
// migrations, and closes it when the test ends.
func NewDB(t testing.TB, migrations ...migration.Entry) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_", "=", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.Open(database.Options{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("testkit: open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if len(migrations) > 0 {
		if _, err := migration.New(db, nil, migrations).Run(); err != nil {
			t.Fatalf("testkit: migrate: %v", err)
		}
	}
	return db
}
