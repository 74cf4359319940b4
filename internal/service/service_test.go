package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jeroginaca/threads/internal/logger"
	"github.com/jeroginaca/threads/internal/models"
)

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Community{}, &models.Thread{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, externalID, username string) *models.User {
	t.Helper()

	user := &models.User{
		ID:         uuid.New().String(),
		ExternalID: externalID,
		Username:   username,
		Name:       "Test " + username,
		Onboarded:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createThread(t *testing.T, db *gorm.DB, authorID, text string, parentID *string, createdAt time.Time) *models.Thread {
	t.Helper()

	thread := &models.Thread{
		ID:        uuid.New().String(),
		Text:      text,
		AuthorID:  authorID,
		ParentID:  parentID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(thread).Error)
	return thread
}
