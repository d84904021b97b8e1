package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 999
)

// PageLinks - ссылки на соседние страницы
type PageLinks struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// PaginatedResponse - конверт страничного ответа
type PaginatedResponse[T any] struct {
	StatusCode int       `json:"status_code"`
	Error      bool      `json:"error"`
	Links      PageLinks `json:"links"`
	Count      int64     `json:"count"`
	Data       []T       `json:"data"`
	Message    string    `json:"message"`
}

// pageParams читает page и page_size из запроса
func pageParams(c *gin.Context, defaultSize int) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := defaultSize
	if ps, err := strconv.Atoi(c.Query("page_size")); err == nil && ps > 0 {
		pageSize = ps
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// Paginate выполняет страничный запрос: отдельно количество, отдельно страница
func Paginate[T any](query *gorm.DB, page, pageSize int) ([]T, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []T
	offset := (page - 1) * pageSize
	err := query.Session(&gorm.Session{}).
		Offset(offset).
		Limit(pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// NewPaginatedResponse собирает конверт со ссылками next/previous
func NewPaginatedResponse[T any](c *gin.Context, status int, rows []T, total int64, page, pageSize int) PaginatedResponse[T] {
	if rows == nil {
		rows = []T{}
	}
	return PaginatedResponse[T]{
		StatusCode: status,
		Error:      false,
		Links:      buildPageLinks(c, page, pageSize, total),
		Count:      total,
		Data:       rows,
	}
}

func buildPageLinks(c *gin.Context, page, pageSize int, total int64) PageLinks {
	var links PageLinks
	if int64(page*pageSize) < total {
		links.Next = pageURL(c, page+1)
	}
	if page > 1 {
		links.Previous = pageURL(c, page-1)
	}
	return links
}

func pageURL(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", fmt.Sprintf("%d", page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
