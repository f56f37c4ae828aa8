package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"adboard/internal/query"
)

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryDefault(c *gin.Context, key string, def bool) bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

// strArrayQuery collects a repeatable query parameter, also splitting
// comma-separated values, and drops empties.
func strArrayQuery(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func int64ArrayQuery(c *gin.Context, key string) []int64 {
	var out []int64
	for _, raw := range strArrayQuery(c, key) {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			out = append(out, i)
		}
	}
	return out
}

// msEpochQuery parses a millisecond unix epoch parameter.
func msEpochQuery(c *gin.Context, key string) *time.Time {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

// pageWindow parses offset and limit. Negative values are preserved so the
// listing endpoints can recognize a degenerate window; positive limits are
// capped at max.
func pageWindow(c *gin.Context, defaultLimit, maxLimit int) query.Window {
	w := query.Window{
		Offset: intQuery(c, "offset", 0),
		Limit:  intQuery(c, "limit", defaultLimit),
	}
	if maxLimit > 0 && w.Limit > maxLimit {
		w.Limit = maxLimit
	}
	return w
}
