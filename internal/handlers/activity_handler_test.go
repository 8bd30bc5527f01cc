package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/repositories"
)

func seedHostedActivity(t *testing.T, db *gorm.DB, hostID string) *models.Activity {
	t.Helper()

	activity := &models.Activity{
		Title:       "City walking tour",
		Date:        time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
		Description: "A guided walk through the old town",
		Category:    "culture",
		City:        "Ghent",
		Venue:       "Belfry",
		Latitude:    51.0536,
		Longitude:   3.7253,
	}
	require.NoError(t, repositories.NewPostgresActivityRepository(db).CreateActivity(activity, hostID))
	return activity
}

func updateRequest(db *gorm.DB, activityID, userID, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(activityID)
	c.Set("userID", userID)

	h := NewActivityHandler(repositories.NewPostgresActivityRepository(db))
	return rec, h.UpdateActivity(c)
}

func TestUpdateActivityReplacesAllFields(t *testing.T) {
	db := newHandlerTestDB(t)
	host := createTestUser(t, db, "host")
	activity := seedHostedActivity(t, db, host.ID)

	// An edit is a full replacement: an emptied venue and zero coordinates
	// are values to store, not fields to skip
	body := fmt.Sprintf(`{
		"title": "Online walking tour",
		"date": %q,
		"description": "Now streamed, no meeting point",
		"category": "culture",
		"city": "",
		"venue": "",
		"latitude": 0,
		"longitude": 0
	}`, activity.Date.Format(time.RFC3339))

	rec, err := updateRequest(db, activity.ID, host.ID, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.Activity
	require.NoError(t, db.First(&stored, "id = ?", activity.ID).Error)
	assert.Equal(t, "Online walking tour", stored.Title)
	assert.Equal(t, "Now streamed, no meeting point", stored.Description)
	assert.Empty(t, stored.City)
	assert.Empty(t, stored.Venue)
	assert.Zero(t, stored.Latitude)
	assert.Zero(t, stored.Longitude)
}

func TestUpdateActivityOnlyHost(t *testing.T) {
	db := newHandlerTestDB(t)
	host := createTestUser(t, db, "host")
	stranger := createTestUser(t, db, "stranger")
	activity := seedHostedActivity(t, db, host.ID)

	body := fmt.Sprintf(`{"title":"Hijacked","date":%q,"description":"nope","category":"culture"}`,
		activity.Date.Format(time.RFC3339))

	_, err := updateRequest(db, activity.ID, stranger.ID, body)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	var stored models.Activity
	require.NoError(t, db.First(&stored, "id = ?", activity.ID).Error)
	assert.Equal(t, activity.Title, stored.Title)
}

func TestUpdateActivityValidatesPayload(t *testing.T) {
	db := newHandlerTestDB(t)
	host := createTestUser(t, db, "host")
	activity := seedHostedActivity(t, db, host.ID)

	// Title below the minimum length
	body := fmt.Sprintf(`{"title":"ab","date":%q,"description":"short title","category":"culture"}`,
		activity.Date.Format(time.RFC3339))

	_, err := updateRequest(db, activity.ID, host.ID, body)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
