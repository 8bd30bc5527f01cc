package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mitul77/gatherly/backend/internal/pagination"
)

// contextWithTimeout bounds background work kicked off from a handler
func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// getUserIDFromContext returns the authenticated user's ID set by the JWT
// middleware, or "" for unauthenticated requests
func getUserIDFromContext(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

// bindPageRequest reads the cursor/pageSize query pair. Values are
// normalized later by the repositories; nothing here can fail.
func bindPageRequest(c echo.Context) pagination.PageRequest {
	var page pagination.PageRequest
	_ = echo.QueryParamsBinder(c).
		String("cursor", &page.Cursor).
		Int("pageSize", &page.PageSize).
		BindError()
	return page
}
