package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/repositories"
)

// captureSender records the last message instead of delivering it
type captureSender struct {
	to      string
	subject string
	sent    bool
}

func (s *captureSender) Send(_ context.Context, to, subject, _ string) error {
	s.to, s.subject, s.sent = to, subject, true
	return nil
}

func newAuthHandler(db *gorm.DB, sender *captureSender) *AuthHandler {
	return NewAuthHandler(repositories.NewPostgresUserRepository(db), sender, "", "", "", "test-secret")
}

func jsonContext(method, body, userID string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("userID", userID)
	}
	return rec, c
}

func createPasswordUser(t *testing.T, db *gorm.DB, name, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := createTestUser(t, db, name)
	user.Password = string(hash)
	require.NoError(t, db.Save(user).Error)
	return user
}

func TestGetUserInfoReturnsCurrentUser(t *testing.T) {
	db := newHandlerTestDB(t)
	h := newAuthHandler(db, &captureSender{})
	alice := createTestUser(t, db, "alice")

	rec, c := jsonContext(http.MethodGet, "", alice.ID)
	require.NoError(t, h.GetUserInfo(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, alice.ID, body.Data.ID)
	assert.Equal(t, "alice", body.Data.DisplayName)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetUserInfoRequiresAuthentication(t *testing.T) {
	db := newHandlerTestDB(t)
	h := newAuthHandler(db, &captureSender{})

	_, c := jsonContext(http.MethodGet, "", "")
	err := h.GetUserInfo(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestChangePasswordRehashes(t *testing.T) {
	db := newHandlerTestDB(t)
	sender := &captureSender{}
	h := newAuthHandler(db, sender)
	alice := createPasswordUser(t, db, "alice", "old-password-1")

	rec, c := jsonContext(http.MethodPost,
		`{"current_password":"old-password-1","new_password":"new-password-1"}`, alice.ID)
	require.NoError(t, h.ChangePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", alice.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-password-1")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("old-password-1")))

	assert.True(t, sender.sent, "a security notice goes to the account's email")
	assert.Equal(t, alice.Email, sender.to)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	db := newHandlerTestDB(t)
	h := newAuthHandler(db, &captureSender{})
	alice := createPasswordUser(t, db, "alice", "old-password-1")

	_, c := jsonContext(http.MethodPost,
		`{"current_password":"not-the-password","new_password":"new-password-1"}`, alice.ID)
	err := h.ChangePassword(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	// The stored hash is untouched
	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", alice.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("old-password-1")))
}

func TestChangePasswordRejectsExternalAccounts(t *testing.T) {
	db := newHandlerTestDB(t)
	h := newAuthHandler(db, &captureSender{})
	alice := createTestUser(t, db, "alice")
	alice.ExternalLogin = true
	require.NoError(t, db.Save(alice).Error)

	_, c := jsonContext(http.MethodPost,
		`{"current_password":"irrelevant","new_password":"new-password-1"}`, alice.ID)
	err := h.ChangePassword(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := newHandlerTestDB(t)
	h := newAuthHandler(db, &captureSender{})
	createTestUser(t, db, "alice")

	_, c := jsonContext(http.MethodPost,
		`{"display_name":"alice again","email":"alice@example.com","password":"password-123"}`, "")
	err := h.Register(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestRegisterStoreFailureIsNotConflict(t *testing.T) {
	db := newHandlerTestDB(t)
	h := newAuthHandler(db, &captureSender{})

	// Kill the connection: the email lookup now fails for a reason other
	// than "no such user", which must surface as 500, not 409 or 201
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, c := jsonContext(http.MethodPost,
		`{"display_name":"alice","email":"alice@example.com","password":"password-123"}`, "")
	err = h.Register(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}
