package payments

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_PutAndGet(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := NewSessionStore(rdb)

	rec := SessionRecord{
		SessionID:   "sess_42",
		BookingID:   "b_1",
		CustomerID:  "c_1",
		AmountCents: 3000,
		Currency:    "USD",
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	rmock.ExpectSet("paysession:sess_42", raw, SessionTTL).SetVal("OK")
	rmock.ExpectGet("paysession:sess_42").SetVal(string(raw))

	require.NoError(t, store.Put(context.Background(), rec))

	got, err := store.Get(context.Background(), "sess_42")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestSessionStore_GetMissing(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := NewSessionStore(rdb)

	rmock.ExpectGet("paysession:nope").RedisNil()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestSessionStore_Delete(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := NewSessionStore(rdb)

	rmock.ExpectDel("paysession:sess_7").SetVal(1)

	require.NoError(t, store.Delete(context.Background(), "sess_7"))
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestMockProvider_CreateSession(t *testing.T) {
	p := &MockProvider{BaseURL: "http://localhost:8080"}

	sess, err := p.CreateSession(context.Background(), CreateSessionRequest{
		BookingID:   "b_1",
		AmountCents: 3000,
		Currency:    "USD",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Contains(t, sess.PaymentURL, sess.ID)
}
