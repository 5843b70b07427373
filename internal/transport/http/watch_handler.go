package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/veeplay/veeplay-api/internal/service"
	"github.com/veeplay/veeplay-api/internal/util"
)

type WatchHandler struct {
	watch *service.WatchService
}

func RegisterWatch(e *echo.Echo, auth *service.AuthService, watch *service.WatchService) {
	handler := &WatchHandler{watch: watch}

	protected := e.Group("", RequireAuth(auth))
	protected.POST("/watch_history", handler.recordProgress)
	protected.GET("/continue-watching", handler.continueWatching)
}

func (h *WatchHandler) recordProgress(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req WatchHistoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	contentID, err := uuid.Parse(strings.TrimSpace(req.ContentID))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("content_id must be a valid UUID"))
	}

	if err := h.watch.Record(c.Request().Context(), user.ID, contentID, coerceProgress(req.Progress)); err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			return c.JSON(http.StatusNotFound, util.Error("content not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not update watch history"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{"message": "Watch history updated"})
}

func (h *WatchHandler) continueWatching(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	items, err := h.watch.ContinueWatching(c.Request().Context(), user.ID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load continue watching"))
	}
	return c.JSON(http.StatusOK, items)
}

// coerceProgress maps a missing, negative or non-finite progress value to
// zero and caps the rest at the storage column's range. Clients have always
// been allowed to send junk here; tightening this needs product sign-off.
func coerceProgress(raw *float64) int {
	if raw == nil {
		return 0
	}
	v := *raw
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
