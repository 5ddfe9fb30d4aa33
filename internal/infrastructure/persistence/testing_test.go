package persistence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/timebill/backend/internal/domain/shared/valueobject"
	"github.com/timebill/backend/internal/domain/timesheet"
)

// setupTestDB creates an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	return db
}

func mustClocking(t *testing.T, resource, customer, project, notes string, start time.Time, minutes int, rate int64) *timesheet.Clocking {
	t.Helper()
	c, err := timesheet.NewClocking(resource, customer, project, notes,
		start, start.Add(time.Duration(minutes)*time.Minute),
		valueobject.NewMoneyUSD(decimal.NewFromInt(rate)))
	require.NoError(t, err)
	return c
}
