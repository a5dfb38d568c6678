package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func metaFor(current, total int) Meta {
	p := Pagination{CurrentPage: current, TotalPages: total}
	if current > 1 {
		prev := current - 1
		p.PrevPageNumber = &prev
	}
	if current < total {
		next := current + 1
		p.NextPageNumber = &next
	}
	return Meta{CurrentPage: current, Pagination: p}
}

func TestPager_FirstPage(t *testing.T) {
	pg := NewPager(metaFor(1, 5))

	assert.False(t, pg.HasPrev())
	assert.True(t, pg.HasNext())

	next, ok := pg.Next()
	assert.True(t, ok)
	assert.Equal(t, 2, next)

	_, ok = pg.Prev()
	assert.False(t, ok)
}

func TestPager_LastPage(t *testing.T) {
	pg := NewPager(metaFor(5, 5))

	assert.True(t, pg.HasPrev())
	assert.False(t, pg.HasNext())

	prev, ok := pg.Prev()
	assert.True(t, ok)
	assert.Equal(t, 4, prev)
}

func TestPager_MiddlePage(t *testing.T) {
	pg := NewPager(metaFor(3, 5))

	prev, _ := pg.Prev()
	next, _ := pg.Next()
	assert.Equal(t, 2, prev)
	assert.Equal(t, 4, next)
	assert.Equal(t, 1, pg.First())
	assert.Equal(t, 5, pg.Last())
}

func TestPager_SinglePage(t *testing.T) {
	pg := NewPager(metaFor(1, 1))

	assert.False(t, pg.HasPrev())
	assert.False(t, pg.HasNext())
	assert.Equal(t, []int{1}, pg.Pages())
}

func TestPager_Seek(t *testing.T) {
	pg := NewPager(metaFor(2, 5))

	n, ok := pg.Seek(4)
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = pg.Seek(0)
	assert.False(t, ok)
	_, ok = pg.Seek(6)
	assert.False(t, ok)
}

func TestPager_Pages(t *testing.T) {
	pg := NewPager(metaFor(1, 5))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pg.Pages())
}
