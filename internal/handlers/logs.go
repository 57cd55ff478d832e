package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wellbeing_station/internal/service"

	"github.com/gin-gonic/gin"
)

// queryLayouts are tried in order; the last one is date-only.
var queryLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// @Summary      List journal events
// @Description  Session changes, alerts and connectivity changes, oldest first. Bounds accept RFC3339, 'YYYY-MM-DD HH:MM:SS' (UTC) or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range, inclusive"  example(2025-08-01)
// @Param        to    query   string  false  "End of range, inclusive"  example(2025-08-31)
// @Param        type  query   string  false  "Event type, case-insensitive"  Enums(SESSION,ALERT,CONNECTIVITY)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	filter, err := logFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), filter)
	switch {
	case errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		if h.log != nil {
			h.log.Errorw("logs_list_failed", "err", err, "from", filter.From, "to", filter.To, "type", filter.Type)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// logFilterFromQuery reads from/to/type. Range and type checks belong to the
// service; only malformed timestamps are rejected here.
func logFilterFromQuery(c *gin.Context) (service.LogFilter, error) {
	f := service.LogFilter{Type: c.Query("type")}
	if qs := c.Query("from"); qs != "" {
		t, _, err := parseQueryTime(qs)
		if err != nil {
			return service.LogFilter{}, fmt.Errorf("from: %w", err)
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, dateOnly, err := parseQueryTime(qs)
		if err != nil {
			return service.LogFilter{}, fmt.Errorf("to: %w", err)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	return f, nil
}

// parseQueryTime parses s in UTC and reports whether it carried no time of day.
func parseQueryTime(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	for i, layout := range queryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), i == len(queryLayouts)-1, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid time %q; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
