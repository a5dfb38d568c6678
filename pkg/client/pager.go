package client

// Pager turns a response's pagination block into navigation decisions. It
// never does arithmetic of its own beyond enumerating 1..TotalPages: prev
// and next come straight from the server, so client and server can never
// disagree about where the edges are.
type Pager struct {
	p Pagination
}

func NewPager(m Meta) Pager { return Pager{p: m.Pagination} }

func (pg Pager) Current() int { return pg.p.CurrentPage }
func (pg Pager) First() int   { return 1 }
func (pg Pager) Last() int    { return pg.p.TotalPages }

func (pg Pager) HasPrev() bool { return pg.p.PrevPageNumber != nil }
func (pg Pager) HasNext() bool { return pg.p.NextPageNumber != nil }

// Prev reports the previous page number; ok is false on the first page.
func (pg Pager) Prev() (int, bool) {
	if pg.p.PrevPageNumber == nil {
		return 0, false
	}
	return *pg.p.PrevPageNumber, true
}

// Next reports the next page number; ok is false on the last page.
func (pg Pager) Next() (int, bool) {
	if pg.p.NextPageNumber == nil {
		return 0, false
	}
	return *pg.p.NextPageNumber, true
}

// Seek validates a direct jump. Out-of-range targets report ok false.
func (pg Pager) Seek(page int) (int, bool) {
	if page < 1 || page > pg.p.TotalPages {
		return 0, false
	}
	return page, true
}

// Pages enumerates every page number for a pagination control.
func (pg Pager) Pages() []int {
	if pg.p.TotalPages < 1 {
		return nil
	}
	out := make([]int, pg.p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
