package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadWatcher_DeliversCounts(t *testing.T) {
	var polls atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		json.NewEncoder(w).Encode(UnreadCount{TotalUnread: int(n)})
	})

	watcher := NewUnreadWatcher(client, 20*time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		watcher.Run(ctx)
		close(done)
	}()

	// The entry poll arrives without waiting for a tick.
	select {
	case count := <-watcher.Updates():
		assert.Equal(t, 1, count.TotalUnread)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial update")
	}

	// Later updates keep flowing from the ticker.
	select {
	case count := <-watcher.Updates():
		assert.GreaterOrEqual(t, count.TotalUnread, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("no ticker update")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}

	// Updates is closed once Run returns.
	for range watcher.Updates() {
	}
}

func TestUnreadWatcher_SlowConsumerSeesLatest(t *testing.T) {
	var polls atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		json.NewEncoder(w).Encode(UnreadCount{TotalUnread: int(n)})
	})

	watcher := NewUnreadWatcher(client, 10*time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	// Let several polls land while nobody reads.
	require.Eventually(t, func() bool { return polls.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	var last UnreadCount
	var got bool
	for count := range watcher.Updates() {
		last = count
		got = true
	}
	require.True(t, got)
	// Only the most recent pending value survives, never the first.
	assert.Greater(t, last.TotalUnread, 1)
}

func TestUnreadWatcher_SurvivesPollErrors(t *testing.T) {
	var polls atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
			return
		}
		json.NewEncoder(w).Encode(UnreadCount{TotalUnread: 7})
	})

	watcher := NewUnreadWatcher(client, 10*time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	select {
	case count := <-watcher.Updates():
		assert.Equal(t, 7, count.TotalUnread)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not recover after a failed poll")
	}
}
