// internal/database/locking_test.go
package database

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/fractora/fractora-backend/internal/models"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestWithRowLockEmitsForUpdate(t *testing.T) {
	db := dryRunDB(t)

	stmt := WithRowLock(db).Find(&models.Listing{}, uuid.New()).Statement
	sql := stmt.SQL.String()
	assert.True(t, strings.HasSuffix(sql, "FOR UPDATE"), "got: %s", sql)
}

func TestWithRowLockOnFilteredQuery(t *testing.T) {
	db := dryRunDB(t)

	stmt := WithRowLock(db).
		Where("asset_ref = ? AND holder_id = ?", uuid.New(), uuid.New()).
		Find(&models.TokenBalance{}).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "asset_ref = ")
	assert.True(t, strings.HasSuffix(sql, "FOR UPDATE"), "got: %s", sql)
}

func TestUnlockedQueryHasNoLockClause(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Find(&models.Listing{}, uuid.New()).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}
