package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/repositories"
	"github.com/mitul77/gatherly/backend/internal/storage"
)

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	userRepository     repositories.UserRepository
	followRepository   repositories.FollowRepository
	activityRepository repositories.ActivityRepository
	photoRepository    repositories.PhotoRepository
	photoStore         storage.PhotoStore
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	activityRepo repositories.ActivityRepository,
	photoRepo repositories.PhotoRepository,
	photoStore storage.PhotoStore,
) *ProfileHandler {
	return &ProfileHandler{
		userRepository:     userRepo,
		followRepository:   followRepo,
		activityRepository: activityRepo,
		photoRepository:    photoRepo,
		photoStore:         photoStore,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profiles/:id", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.DELETE("/profile", h.DeleteAccount)
	g.GET("/profiles/:id/activities", h.GetUserActivities)
	g.GET("/profiles/:id/photos", h.GetPhotos)
	g.POST("/profile/photos", h.UploadPhoto)
	g.PUT("/profile/photos/:photoId/main", h.SetMainPhoto)
	g.DELETE("/profile/photos/:photoId", h.DeletePhoto)
	g.GET("/users/search", h.SearchUsers)
}

// GetProfile returns a user's profile as seen by the authenticated viewer
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	profile, err := h.followRepository.GetProfile(c.Param("id"), currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": profile})
}

// UpdateProfile updates the authenticated user's display name and bio
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// DeleteAccount deletes the authenticated user and everything referencing
// them, follow edges in both directions included
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.userRepository.DeleteUser(currentUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetUserActivities returns one page of activities the user attends,
// filtered by ?filter=past|hosting|future
func (h *ProfileHandler) GetUserActivities(c echo.Context) error {
	userID := c.Param("id")

	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, err := h.activityRepository.ListUserActivities(userID, c.QueryParam("filter"), bindPageRequest(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetPhotos lists a user's photos
func (h *ProfileHandler) GetPhotos(c echo.Context) error {
	photos, err := h.photoRepository.GetPhotosByUserID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": photos})
}

// UploadPhoto stores an uploaded photo binary and records its metadata
func (h *ProfileHandler) UploadPhoto(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if h.photoStore == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Photo storage not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer file.Close()

	key := fmt.Sprintf("photos/%s/%s", currentUserID, uuid.NewString())
	url, err := h.photoStore.Upload(c.Request().Context(), key, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload photo")
	}

	photo := &models.Photo{UserID: currentUserID, URL: url}
	if err := h.photoRepository.CreatePhoto(photo); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": photo})
}

// SetMainPhoto makes one of the user's photos their profile image
func (h *ProfileHandler) SetMainPhoto(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.photoRepository.SetMainPhoto(c.Param("photoId"), currentUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Photo not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeletePhoto deletes one of the user's photos
func (h *ProfileHandler) DeletePhoto(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	photo, err := h.photoRepository.GetPhotoByID(c.Param("photoId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Photo not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if photo.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Cannot delete another user's photo")
	}

	if err := h.photoRepository.DeletePhoto(photo.ID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SearchUsers searches for users by display name or email
func (h *ProfileHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
}
