package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	return c, w
}

func TestParseSummaryRangeExplicitBounds(t *testing.T) {
	c, _ := queryContext(t, "/api/sales/summary?startDate=2026-03-01&endDate=2026-03-31")

	start, end, ok := parseSummaryRange(c)
	require.True(t, ok)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, 2026, end.Year())
	assert.Equal(t, time.March, end.Month())
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
}

func TestParseSummaryRangeDefaultsToLast30Days(t *testing.T) {
	c, _ := queryContext(t, "/api/sales/summary")

	start, end, ok := parseSummaryRange(c)
	require.True(t, ok)

	wantStart := time.Now().AddDate(0, 0, -29)
	assert.Equal(t, wantStart.Year(), start.Year())
	assert.Equal(t, wantStart.YearDay(), start.YearDay())
	assert.Equal(t, time.Now().YearDay(), end.YearDay())
	assert.Equal(t, 23, end.Hour())
}

func TestParseSummaryRangeRejectsBadDate(t *testing.T) {
	c, w := queryContext(t, "/api/sales/summary?startDate=03-01-2026")

	_, _, ok := parseSummaryRange(c)
	assert.False(t, ok)
	assert.Equal(t, 400, w.Code)
}

func TestParseSummaryRangeRejectsInvertedRange(t *testing.T) {
	c, w := queryContext(t, "/api/sales/summary?startDate=2026-03-31&endDate=2026-03-01")

	_, _, ok := parseSummaryRange(c)
	assert.False(t, ok)
	assert.Equal(t, 400, w.Code)
}
