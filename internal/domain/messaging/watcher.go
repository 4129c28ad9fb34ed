package messaging

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is how often the unread badge is refreshed.
const DefaultPollInterval = 10 * time.Second

// UnreadWatcher polls the unread counts on a fixed interval and pushes
// each result to Updates. The channel holds one slot; a slow consumer
// sees the latest count, not a backlog of stale ones.
type UnreadWatcher struct {
	client   *Client
	interval time.Duration
	logger   zerolog.Logger
	updates  chan UnreadCount
}

func NewUnreadWatcher(client *Client, interval time.Duration, logger zerolog.Logger) *UnreadWatcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &UnreadWatcher{
		client:   client,
		interval: interval,
		logger:   logger.With().Str("component", "unread_watcher").Logger(),
		updates:  make(chan UnreadCount, 1),
	}
}

// Updates delivers each successful poll result. The channel is closed
// when Run returns.
func (w *UnreadWatcher) Updates() <-chan UnreadCount {
	return w.updates
}

// Run polls until ctx is cancelled. An immediate poll happens on entry
// so the badge is populated without waiting a full interval. Poll
// failures are logged and the next tick retries.
func (w *UnreadWatcher) Run(ctx context.Context) {
	defer close(w.updates)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *UnreadWatcher) poll(ctx context.Context) {
	count, err := w.client.Unread(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn().Err(err).Msg("unread poll failed")
		}
		return
	}

	// Drop the stale pending value, if any, then publish the fresh one.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- *count:
	default:
	}
}
