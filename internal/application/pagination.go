package application

import (
	"math"

	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// NewPage applies defaults to raw page/limit values; non-positive values
// fall back to the defaults, limit is capped at MaxLimit and page is capped
// so the offset stays within an int32.
func NewPage(page, limit int) repository.Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}
	return repository.Page{Page: page, Limit: limit}
}

type PageResult[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func newPageResult[T any](items []T, p repository.Page, total int) PageResult[T] {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return PageResult[T]{Items: items, Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
