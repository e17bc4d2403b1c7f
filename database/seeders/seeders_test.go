package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func counts(t *testing.T, db *gorm.DB) (customers, products int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	return customers, products
}

func TestCatalogueSeedsOnce(t *testing.T) {
	db := testkit.NewDB(t, migrations.All()...)
	ctx := context.Background()

	require.NoError(t, seeders.SeedCatalogue(ctx, db))
	c, p := counts(t, db)
	assert.Equal(t, int64(2), c)
	assert.Equal(t, int64(4), p)

	require.NoError(t, seeders.SeedCatalogue(ctx, db))
	c, p = counts(t, db)
	assert.Equal(t, int64(2), c)
	assert.Equal(t, int64(4), p)
}

func TestRunAllReportsProgress(t *testing.T) {
	db := testkit.NewDB(t, migrations.All()...)
	assert.Contains(t, seeders.Names(), "catalogue")

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(context.Background(), db, &out))
	assert.Contains(t, out.String(), "Running seeder: catalogue … done")

	c, _ := counts(t, db)
	assert.Equal(t, int64(2), c)
}

func TestRunAllFailsWithoutSchema(t *testing.T) {
	db := testkit.NewDB(t)

	var out bytes.Buffer
	err := seeders.RunAll(context.Background(), db, &out)
	assert.ErrorContains(t, err, `seeder "catalogue"`)
	assert.Contains(t, out.String(), "FAILED")
}
