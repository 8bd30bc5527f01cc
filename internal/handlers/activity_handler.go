package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/repositories"
)

// ActivityHandler handles activity-related HTTP requests
type ActivityHandler struct {
	activityRepository repositories.ActivityRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityRepo repositories.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepository: activityRepo}
}

// RegisterActivityRoutes registers activity-related routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activities", h.ListActivities)
	g.GET("/activities/:id", h.GetActivity)
	g.POST("/activities", h.CreateActivity)
	g.PUT("/activities/:id", h.UpdateActivity)
	g.DELETE("/activities/:id", h.DeleteActivity)
	g.POST("/activities/:id/attend", h.ToggleAttendance)
}

// ListActivities returns one cursor-paginated page of activities
func (h *ActivityHandler) ListActivities(c echo.Context) error {
	page, err := h.activityRepository.ListActivities(bindPageRequest(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetActivity returns one activity with host and attendee projections
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	detail, err := h.activityRepository.GetActivityDetail(c.Param("id"), currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": detail})
}

// CreateActivity creates an activity hosted by the authenticated user
func (h *ActivityHandler) CreateActivity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	activity := &models.Activity{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
		City:        req.City,
		Venue:       req.Venue,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if err := h.activityRepository.CreateActivity(activity, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": activity})
}

// UpdateActivity updates an activity; only the host may edit it
func (h *ActivityHandler) UpdateActivity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	activityID := c.Param("id")

	isHost, err := h.activityRepository.IsHost(activityID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isHost {
		return echo.NewHTTPError(http.StatusForbidden, "Only the host can edit this activity")
	}

	activity, err := h.activityRepository.GetActivityByID(activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.EditActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	activity.Title = req.Title
	activity.Date = req.Date
	activity.Description = req.Description
	activity.Category = req.Category
	activity.City = req.City
	activity.Venue = req.Venue
	activity.Latitude = req.Latitude
	activity.Longitude = req.Longitude

	if err := h.activityRepository.UpdateActivity(activity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": activity})
}

// DeleteActivity deletes an activity; only the host may delete it
func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	activityID := c.Param("id")

	isHost, err := h.activityRepository.IsHost(activityID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isHost {
		return echo.NewHTTPError(http.StatusForbidden, "Only the host can delete this activity")
	}

	if err := h.activityRepository.DeleteActivity(activityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ToggleAttendance joins or leaves an activity; as the host it flips the
// activity's cancelled flag instead
func (h *ActivityHandler) ToggleAttendance(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.activityRepository.ToggleAttendance(c.Param("id"), currentUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
