package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Shriramtantry/task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid   = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid     = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errUserIDInvalid = "invalid 'user_id'; use an integer"
	errRangeInvalid  = "'from' must be <= 'to'"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List activity
// @Description  Filter the audit trail by user, type and date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' is end-of-day inclusive.
// @Tags         activity
// @Produce      json
// @Param        user_id  query     int     false  "Owner id"
// @Param        from     query     string  false  "Start of range"  example(2025-08-01)
// @Param        to       query     string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        type     query     string  false  "Activity type"  Enums(USER_REGISTERED,USER_LOGGED_IN,TASK_CREATED,TASK_DELETED)
// @Success      200      {object}  map[string]interface{}  "count, events"
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/activity [get]
func (h *Handler) getActivity(c *gin.Context) {
	var (
		filter service.ActivityFilter
		err    error
	)
	filter.Type = strings.ToUpper(strings.TrimSpace(c.Query("type")))

	if qs := c.Query("user_id"); qs != "" {
		if filter.UserID, err = strconv.Atoi(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errUserIDInvalid})
			return
		}
	}
	if qs := c.Query("from"); qs != "" {
		if filter.From, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if filter.To, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			filter.To = filter.To.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	events, err := h.services.ActivityLog.List(c.Request.Context(), filter)
	if err != nil {
		if service.KindOf(err) == service.KindValidation {
			c.JSON(http.StatusBadRequest, gin.H{"error": errRangeInvalid})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load activity", "activity_list_failed", err,
			"from", filter.From, "to", filter.To, "type", filter.Type, "user_id", filter.UserID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseQueryTime tries each accepted layout and normalizes to UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
