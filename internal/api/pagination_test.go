package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContextWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestPageParamsParse(t *testing.T) {
	params := pageParams{DefaultPageSize: 20, MaxPageSize: 100}

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&page_size=50", 3, 50},
		{"zero page", "page=0", 1, 20},
		{"negative page size", "page_size=-5", 1, 20},
		{"capped page size", "page_size=500", 1, 100},
		{"garbage", "page=abc&page_size=xyz", 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := params.parse(testContextWithQuery(t, tt.query))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestNewPagination(t *testing.T) {
	meta := newPagination(2, 20, 45)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.PageSize)
	assert.Equal(t, int64(45), meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)

	// An exact multiple produces no partial page; zero items, zero pages.
	assert.Equal(t, 2, newPagination(1, 20, 40).TotalPages)
	assert.Equal(t, 0, newPagination(1, 20, 0).TotalPages)
}

func TestParseDateQuery(t *testing.T) {
	date, ok := parseDateQuery(testContextWithQuery(t, "start_date=2026-08-01"), "start_date")
	require.True(t, ok)
	require.NotNil(t, date)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *date)

	date, ok = parseDateQuery(testContextWithQuery(t, ""), "start_date")
	assert.True(t, ok)
	assert.Nil(t, date)

	_, ok = parseDateQuery(testContextWithQuery(t, "start_date=01.08.2026"), "start_date")
	assert.False(t, ok)
}
