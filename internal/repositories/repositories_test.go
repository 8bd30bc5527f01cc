package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mitul77/gatherly/backend/internal/models"
)

// newTestDB opens an isolated in-memory SQLite database with the same
// schema and error translation the production Postgres connection uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.ActivityAttendee{},
		&models.UserFollowing{},
		&models.Comment{},
		&models.Photo{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, displayName string) *models.User {
	t.Helper()

	user := &models.User{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Email:       displayName + "@example.com",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedActivity(t *testing.T, db *gorm.DB, title string, date time.Time, hostID string) *models.Activity {
	t.Helper()

	repo := NewPostgresActivityRepository(db)
	activity := &models.Activity{
		Title:       title,
		Date:        date,
		Description: "seeded",
		Category:    "music",
		City:        "Dhaka",
		Venue:       "Somewhere",
	}
	require.NoError(t, repo.CreateActivity(activity, hostID))
	return activity
}
