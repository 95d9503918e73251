package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rotaviagem/backend/internal/models"
	"github.com/rotaviagem/backend/internal/storage"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test, named after the test so
	// parallel tests never collide.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Trip{},
		&models.Report{},
		&models.Photo{},
		&models.Invoice{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Username: strings.ToLower(strings.ReplaceAll(name, " ", ".")),
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// fakeStore records upload and delete calls in order so tests can assert
// ordering against database writes.
type fakeStore struct {
	calls      []string
	failUpload bool
	failDelete bool
}

func (f *fakeStore) Upload(_ context.Context, _ []byte, fileName string, _ storage.UploadMeta) (string, error) {
	f.calls = append(f.calls, "upload:"+fileName)
	if f.failUpload {
		return "", fmt.Errorf("upload rejected")
	}
	return "https://files.example.com/" + fileName, nil
}

func (f *fakeStore) DeleteByURL(_ context.Context, url string) error {
	f.calls = append(f.calls, "delete:"+url)
	if f.failDelete {
		return fmt.Errorf("delete rejected")
	}
	return nil
}
