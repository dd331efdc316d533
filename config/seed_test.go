package config

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/banjiha/community/models"
)

func withSeedMode(t *testing.T, mode string) {
	t.Helper()
	oldCfg, oldLoaded := cfg, loaded
	applyDefaults(&cfg)
	cfg.SeedMode = mode
	loaded = true
	t.Cleanup(func() {
		cfg, loaded = oldCfg, oldLoaded
	})
}

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Post{}, &models.Comment{}, &models.Room{}))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeedMissingFillsEmptyTablesOnce(t *testing.T) {
	withSeedMode(t, SeedMissing)
	db := newSeedTestDB(t)

	require.NoError(t, SeedDatabase(db))
	require.EqualValues(t, 6, count(t, db, &models.Room{}))
	require.EqualValues(t, 18, count(t, db, &models.Post{}))

	// Re-running does not duplicate anything.
	require.NoError(t, SeedDatabase(db))
	require.EqualValues(t, 6, count(t, db, &models.Room{}))
	require.EqualValues(t, 18, count(t, db, &models.Post{}))
}

func TestSeedResetReinsertsRooms(t *testing.T) {
	withSeedMode(t, SeedReset)
	db := newSeedTestDB(t)

	require.NoError(t, db.Create(&models.Room{Name: "임시방", Slug: "temp-room"}).Error)
	require.NoError(t, SeedDatabase(db))

	require.EqualValues(t, 6, count(t, db, &models.Room{}))
	var gone int64
	require.NoError(t, db.Model(&models.Room{}).Where("slug = ?", "temp-room").Count(&gone).Error)
	require.Zero(t, gone)
}

func TestSeedOffLeavesDatabaseAlone(t *testing.T) {
	withSeedMode(t, SeedOff)
	db := newSeedTestDB(t)

	require.NoError(t, SeedDatabase(db))
	require.Zero(t, count(t, db, &models.Room{}))
	require.Zero(t, count(t, db, &models.Post{}))
}
