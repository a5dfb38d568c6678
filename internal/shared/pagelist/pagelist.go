// Package pagelist implements the list envelope every collection endpoint
// speaks: { data: [...], meta: { current_page, pagination: {...} } }.
// The server is the only party that computes page numbers; clients relay
// the pagination block into their controls verbatim.
package pagelist

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Params struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
}

// FromQuery reads page/search plus the named filter keys from a query string.
// Unknown or malformed page values fall back to page 1.
func FromQuery(q url.Values, filterKeys ...string) Params {
	p := Params{Page: 1, PageSize: DefaultPageSize}

	if v := strings.TrimSpace(q.Get("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := strings.TrimSpace(q.Get("per_page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxPageSize {
			p.PageSize = n
		}
	}
	p.Search = strings.TrimSpace(q.Get("search"))

	for _, k := range filterKeys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			if p.Filters == nil {
				p.Filters = map[string]string{}
			}
			p.Filters[k] = v
		}
	}
	return p
}

type Pagination struct {
	CurrentPage    int  `json:"current_page"`
	TotalPages     int  `json:"total_pages"`
	PrevPageNumber *int `json:"prev_page_number"`
	NextPageNumber *int `json:"next_page_number"`
}

type Meta struct {
	CurrentPage int        `json:"current_page"`
	Pagination  Pagination `json:"pagination"`
}

type Envelope struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

func totalPages(pageSize int, total int64) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	n := int((total + int64(pageSize) - 1) / int64(pageSize))
	if n < 1 {
		n = 1
	}
	return n
}

// ClampPage snaps a requested page into [1, total_pages]. Repos call it
// between counting and fetching so an out-of-range ?page= serves the last
// page instead of an empty one.
func ClampPage(page, pageSize int, total int64) int {
	last := totalPages(pageSize, total)
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

// NewMeta derives the pagination block from the requested page and the total
// row count. The page is clamped into range first; the invariants
// prev_page_number is null iff current_page == 1 and next_page_number is
// null iff current_page == total_pages hold for any input.
func NewMeta(page, pageSize int, total int64) Meta {
	last := totalPages(pageSize, total)
	page = ClampPage(page, pageSize, total)

	pg := Pagination{CurrentPage: page, TotalPages: last}
	if page > 1 {
		prev := page - 1
		pg.PrevPageNumber = &prev
	}
	if page < last {
		next := page + 1
		pg.NextPageNumber = &next
	}

	return Meta{CurrentPage: page, Pagination: pg}
}

func NewEnvelope(data any, p Params, total int64) Envelope {
	return Envelope{Data: data, Meta: NewMeta(p.Page, p.PageSize, total)}
}

// Scope applies Limit/Offset for the requested page. Ordering stays with the
// caller; the envelope never re-sorts server results.
func Scope(p Params) func(*gorm.DB) *gorm.DB {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(size).Offset((page - 1) * size)
	}
}
