package database_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"remindme-service/internal/database"
	"remindme-service/internal/database/dbtest"
	"remindme-service/pkg/models"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("mongo", "mongodb://localhost", zap.NewNop())
	assert.Error(t, err)
}

func TestMigrateCreatesCollections(t *testing.T) {
	db := dbtest.Open(t)

	for _, table := range []interface{}{&models.User{}, &models.Contact{}, &models.Reminder{}, &models.Message{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Email"))
	assert.True(t, db.Migrator().HasIndex(&models.Contact{}, "ContactID"))
}

func TestContactJSONColumnsRoundTrip(t *testing.T) {
	db := dbtest.Open(t)

	c := models.Contact{
		ContactID:    "c-1",
		UserID:       "u-1",
		Name:         "Ada",
		Tags:         []string{"family", "close"},
		CustomFields: map[string]interface{}{"city": "London"},
	}
	require.NoError(t, db.Create(&c).Error)

	var got models.Contact
	require.NoError(t, db.Where("contact_id = ?", "c-1").First(&got).Error)
	assert.Equal(t, []string{"family", "close"}, []string(got.Tags))
	assert.Equal(t, "London", got.CustomFields["city"])
	assert.Nil(t, got.LastContacted)
}

func TestGormLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	var c models.Contact
	err = db.Where("contact_id = ?", "missing").First(&c).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.FilterMessage("[DB] query failed").Len())

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	failed := logs.FilterMessage("[DB] query failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Contains(t, failed[0].ContextMap()["sql"], "no_such_table")
}
