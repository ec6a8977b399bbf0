package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"vocabforge-be/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Uint64

// OpenTestDB opens an isolated in-memory sqlite database migrated with the
// full schema. Each call gets its own shared-cache name so parallel tests —
// and repeated fixtures within one test — never see each other's rows.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Topic{},
		&model.CanonicalSet{},
		&model.Term{},
		&model.Fact{},
		&model.UserTopic{},
		&model.WordbankEntry{},
		&model.Delivery{},
		&model.UserQuota{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
