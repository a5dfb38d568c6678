package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	got  []string
	done chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 16)}
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	r.got = append(r.got, v)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestDebouncer_BurstYieldsFinalValue(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(30*time.Millisecond, rec.record)

	for _, v := range []string{"d", "de", "des", "dese", "deser", "desert"} {
		d.Input(v)
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("debounced callback never fired")
	}

	assert.Equal(t, []string{"desert"}, rec.values())
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(20*time.Millisecond, rec.record)

	d.Input("alpha")
	require.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 5*time.Millisecond)

	d.Input("beta")
	require.Eventually(t, func() bool { return len(rec.values()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"alpha", "beta"}, rec.values())
}

func TestDebouncer_Stop(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(20*time.Millisecond, rec.record)

	d.Input("never")
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.values())
}

func TestDebouncer_Flush(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(time.Hour, rec.record)

	d.Input("now")
	d.Flush()

	assert.Equal(t, []string{"now"}, rec.values())

	// nothing pending; a second flush is a no-op
	d.Flush()
	assert.Equal(t, []string{"now"}, rec.values())
}
