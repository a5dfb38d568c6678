package pagelist

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta_FirstPage(t *testing.T) {
	// 45 items, page size 10 -> 5 pages
	m := NewMeta(1, 10, 45)

	assert.Equal(t, 1, m.CurrentPage)
	assert.Equal(t, 5, m.Pagination.TotalPages)
	assert.Nil(t, m.Pagination.PrevPageNumber)
	require.NotNil(t, m.Pagination.NextPageNumber)
	assert.Equal(t, 2, *m.Pagination.NextPageNumber)
}

func TestNewMeta_LastPage(t *testing.T) {
	m := NewMeta(5, 10, 45)

	assert.Equal(t, 5, m.Pagination.TotalPages)
	assert.Nil(t, m.Pagination.NextPageNumber)
	require.NotNil(t, m.Pagination.PrevPageNumber)
	assert.Equal(t, 4, *m.Pagination.PrevPageNumber)
}

func TestNewMeta_MiddlePage(t *testing.T) {
	m := NewMeta(3, 10, 45)

	require.NotNil(t, m.Pagination.PrevPageNumber)
	require.NotNil(t, m.Pagination.NextPageNumber)
	assert.Equal(t, 2, *m.Pagination.PrevPageNumber)
	assert.Equal(t, 4, *m.Pagination.NextPageNumber)
}

func TestNewMeta_Invariants(t *testing.T) {
	// prev == nil <=> page == 1, next == nil <=> page == total_pages
	for page := 1; page <= 7; page++ {
		m := NewMeta(page, 10, 63) // 7 pages
		pg := m.Pagination

		assert.Equal(t, page == 1, pg.PrevPageNumber == nil, "page %d prev", page)
		assert.Equal(t, page == pg.TotalPages, pg.NextPageNumber == nil, "page %d next", page)
	}
}

func TestNewMeta_PageBeyondRange(t *testing.T) {
	// ?page=7 on a 45-row/size-10 collection snaps to the last page
	m := NewMeta(7, 10, 45)

	assert.Equal(t, 5, m.CurrentPage)
	assert.Equal(t, 5, m.Pagination.CurrentPage)
	assert.Equal(t, 5, m.Pagination.TotalPages)
	assert.Nil(t, m.Pagination.NextPageNumber)
	require.NotNil(t, m.Pagination.PrevPageNumber)
	assert.Equal(t, 4, *m.Pagination.PrevPageNumber)
}

func TestNewMeta_InvariantsOutOfRange(t *testing.T) {
	for _, page := range []int{-3, 0, 6, 7, 100} {
		m := NewMeta(page, 10, 45)
		pg := m.Pagination

		assert.GreaterOrEqual(t, pg.CurrentPage, 1, "page %d", page)
		assert.LessOrEqual(t, pg.CurrentPage, pg.TotalPages, "page %d", page)
		assert.Equal(t, pg.CurrentPage == 1, pg.PrevPageNumber == nil, "page %d prev", page)
		assert.Equal(t, pg.CurrentPage == pg.TotalPages, pg.NextPageNumber == nil, "page %d next", page)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 10, 45))
	assert.Equal(t, 3, ClampPage(3, 10, 45))
	assert.Equal(t, 5, ClampPage(9, 10, 45))
	assert.Equal(t, 1, ClampPage(4, 10, 0))
}

func TestNewMeta_Empty(t *testing.T) {
	m := NewMeta(1, 10, 0)

	assert.Equal(t, 1, m.Pagination.TotalPages)
	assert.Nil(t, m.Pagination.PrevPageNumber)
	assert.Nil(t, m.Pagination.NextPageNumber)
}

func TestNewMeta_ExactMultiple(t *testing.T) {
	m := NewMeta(4, 10, 40)

	assert.Equal(t, 4, m.Pagination.TotalPages)
	assert.Nil(t, m.Pagination.NextPageNumber)
}

func TestFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("page", "3")
	q.Set("search", "  desert safari ")
	q.Set("gender", "female")
	q.Set("ignored", "x")

	p := FromQuery(q, "gender", "status")

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, "desert safari", p.Search)
	assert.Equal(t, map[string]string{"gender": "female"}, p.Filters)
}

func TestFromQuery_BadPage(t *testing.T) {
	q := url.Values{}
	q.Set("page", "-2")

	p := FromQuery(q)
	assert.Equal(t, 1, p.Page)

	q.Set("page", "abc")
	p = FromQuery(q)
	assert.Equal(t, 1, p.Page)
}
