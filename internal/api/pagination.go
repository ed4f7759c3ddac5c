package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Pagination is the paging metadata attached to every list response.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// pageParams holds the bounds configured for list endpoints.
type pageParams struct {
	DefaultPageSize int
	MaxPageSize     int
}

// parse reads page/page_size query params, clamping them to sane bounds.
func (p pageParams) parse(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(p.DefaultPageSize)))
	if pageSize < 1 {
		pageSize = p.DefaultPageSize
	}
	if pageSize > p.MaxPageSize {
		pageSize = p.MaxPageSize
	}
	return page, pageSize
}

// newPagination computes the metadata for one page of results.
func newPagination(page, pageSize int, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// parseDateQuery reads an optional YYYY-MM-DD query param.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &date, true
}
