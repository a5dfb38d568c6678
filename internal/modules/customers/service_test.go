package customers

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Detail_CacheHit(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()

	cached := Customer{ID: "c_1", FirstName: "Sara", Email: "sara@example.com", Points: 120}
	b, err := json.Marshal(cached)
	require.NoError(t, err)
	rmock.ExpectGet("customer:c_1").SetVal(string(b))

	// db is nil on purpose: a cache hit must not touch the repo
	svc := &Service{rdb: rdb, logger: slog.Default()}

	got, err := svc.Detail(context.Background(), "c_1")
	require.NoError(t, err)
	assert.Equal(t, "Sara", got.FirstName)
	assert.Equal(t, 120, got.Points)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestService_DropCache(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectDel("customer:c_9").SetVal(1)

	svc := &Service{rdb: rdb, logger: slog.Default()}
	svc.dropCache(context.Background(), "c_9")

	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "customer:abc", cacheKey("abc"))
}
