package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// serves 45 customers in pages of 10
func listServer(t *testing.T) *httptest.Server {
	t.Helper()

	const total, pageSize, totalPages = 45, 10, 5

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.Header.Get("Accept-Language"))
		if cookie, err := r.Cookie("authToken"); assert.NoError(t, err) {
			assert.Equal(t, "tok123", cookie.Value)
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}

		start := (page - 1) * pageSize
		end := start + pageSize
		if end > total {
			end = total
		}
		items := make([]fakeCustomer, 0, pageSize)
		for i := start; i < end; i++ {
			items = append(items, fakeCustomer{ID: fmt.Sprintf("c_%02d", i), Name: fmt.Sprintf("Customer %02d", i)})
		}

		pagination := map[string]any{
			"current_page":     page,
			"total_pages":      totalPages,
			"prev_page_number": nil,
			"next_page_number": nil,
		}
		if page > 1 {
			pagination["prev_page_number"] = page - 1
		}
		if page < totalPages {
			pagination["next_page_number"] = page + 1
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": items,
			"meta": map[string]any{"current_page": page, "pagination": pagination},
		})
	}))
}

func TestList_WalksAllPagesViaPager(t *testing.T) {
	srv := listServer(t)
	defer srv.Close()

	c := New(srv.URL, WithAuthToken("tok123"))

	var seen []fakeCustomer
	page := 1
	for pages := 0; pages < 10; pages++ {
		q := url.Values{"page": []string{strconv.Itoa(page)}}
		res, err := List[fakeCustomer](context.Background(), c, "/api/customers", q)
		require.NoError(t, err)
		seen = append(seen, res.Data...)

		pg := NewPager(res.Meta)
		next, ok := pg.Next()
		if !ok {
			assert.Equal(t, 5, pg.Current())
			break
		}
		page = next
	}

	require.Len(t, seen, 45)
	// server order preserved
	assert.Equal(t, "c_00", seen[0].ID)
	assert.Equal(t, "c_44", seen[44].ID)
}

func TestList_EnvelopeInvariants(t *testing.T) {
	srv := listServer(t)
	defer srv.Close()

	c := New(srv.URL, WithAuthToken("tok123"))

	for page := 1; page <= 5; page++ {
		q := url.Values{"page": []string{strconv.Itoa(page)}}
		res, err := List[fakeCustomer](context.Background(), c, "/api/customers", q)
		require.NoError(t, err)

		p := res.Meta.Pagination
		assert.Equal(t, page == 1, p.PrevPageNumber == nil, "page %d", page)
		assert.Equal(t, page == p.TotalPages, p.NextPageNumber == nil, "page %d", page)
	}
}

func TestGet_DecodesDataField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": fakeCustomer{ID: "c_7", Name: "Nadia"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := Get[fakeCustomer](context.Background(), c, "/api/customers/c_7")
	require.NoError(t, err)
	assert.Equal(t, "Nadia", got.Name)
}

func TestMutate_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "Customer is already in that state."})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Mutate(context.Background(), http.MethodPost, "/api/customers/c_1/suspend", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Customer is already in that state.", apiErr.Message)
}

func TestMutateAndInvalidate_RefreshesCollectionAndDetail(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Customer suspended."})
	}))
	defer srv.Close()

	c := New(srv.URL)
	cache := NewQueryCache()

	gen := cache.Begin("customers")
	cache.Fill("customers", gen, "list")
	gen = cache.Begin("customers/c_1")
	cache.Fill("customers/c_1", gen, "detail")

	res, err := MutateAndInvalidate(context.Background(), c, cache,
		http.MethodPost, "/api/customers/c_1/suspend", nil, "customers")
	require.NoError(t, err)
	assert.Equal(t, "Customer suspended.", res.Message)
	assert.Equal(t, 1, calls)

	_, _, stale := cache.Get("customers")
	assert.True(t, stale)
	_, _, stale = cache.Get("customers/c_1")
	assert.True(t, stale)
}

func TestMutateAndInvalidate_FailureLeavesCacheAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "Validation failed."})
	}))
	defer srv.Close()

	c := New(srv.URL)
	cache := NewQueryCache()
	gen := cache.Begin("coupons")
	cache.Fill("coupons", gen, "list")

	_, err := MutateAndInvalidate(context.Background(), c, cache,
		http.MethodPost, "/api/coupons", map[string]any{}, "coupons")
	require.Error(t, err)

	_, ok, stale := cache.Get("coupons")
	assert.True(t, ok)
	assert.False(t, stale)
}
