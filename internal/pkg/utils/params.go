package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const MaxPageSize = 100

// Page — параметры пагинации из query (?page=&limit=).
type Page struct {
	Number int `json:"page"`
	Limit  int `json:"limit"`
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pagination is the block returned next to every paginated list.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(p Page, total int64) Pagination {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (int(total) + p.Limit - 1) / p.Limit
	}
	return Pagination{Page: p.Number, Limit: p.Limit, Total: total, TotalPages: totalPages}
}

// ParsePage reads page and limit. Invalid values fall back to page 1 and
// defaultLimit; limit is capped at MaxPageSize.
func ParsePage(c *gin.Context, defaultLimit int) Page {
	p := Page{Number: 1, Limit: defaultLimit}
	if val, err := strconv.Atoi(c.Query("limit")); err == nil && val > 0 {
		p.Limit = val
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if val, err := strconv.Atoi(c.Query("page")); err == nil && val > 0 {
		p.Number = val
	}
	return p
}

// ParseID parses a positive int64 path parameter.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseFlag reads a boolean query flag. Front ends send 1/0 as well as
// true/false; anything unparsable counts as false.
func ParseFlag(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return err == nil && v
}

// ParseNonNegative reads an optional integer query value; missing or
// invalid values return def.
func ParseNonNegative(c *gin.Context, name string, def int) int {
	val, err := strconv.Atoi(c.Query(name))
	if err != nil || val < 0 {
		return def
	}
	return val
}
