package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// FeedMessage is the JSON document published for every announced event.
// Session identifies one game connection; Browser is shared by all tabs of one browser.
type FeedMessage struct {
	Browser string       `json:"browser"`
	Session string       `json:"session"`
	Event   entity.Event `json:"event"`
}

// EventFeed publishes session events to a Redis channel. Announcing only enqueues;
// a single worker started with Run does the publishing, so events keep their order.
type EventFeed struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
	queue   chan FeedMessage
}

func NewEventFeed(logger *slog.Logger, client *redis.Client, channel string, queueSize int) *EventFeed {
	if queueSize <= 0 {
		queueSize = 1
	}

	return &EventFeed{
		logger:  logger.With("component", "event-feed", "channel", channel),
		client:  client,
		channel: channel,
		queue:   make(chan FeedMessage, queueSize),
	}
}

// Run publishes queued messages until ctx is done.
func (that *EventFeed) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	for {
		select {
		case <-ctx.Done():
			log.Info("event feed stopped")
			return
		case msg := <-that.queue:
			if err := that.Publish(ctx, msg); err != nil {
				log.Error("failed to publish event", "session", msg.Session, "event", msg.Event.Kind, "error", err)
			}
		}
	}
}

func (that *EventFeed) Publish(ctx context.Context, msg FeedMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("could not marshal feed message: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish feed message: %w", err)
	}

	return nil
}

func (that *EventFeed) enqueue(msg FeedMessage) error {
	select {
	case that.queue <- msg:
		return nil
	default:
		return apperror.ErrEventFeedQueueFull
	}
}

// ForSession returns an announcer that tags events with the browser and session ids.
func (that *EventFeed) ForSession(browserID, sessionID string) *SessionFeed {
	return &SessionFeed{feed: that, browserID: browserID, sessionID: sessionID}
}

type SessionFeed struct {
	feed      *EventFeed
	browserID string
	sessionID string
}

func (that *SessionFeed) Announce(event entity.Event) {
	if err := that.feed.enqueue(FeedMessage{Browser: that.browserID, Session: that.sessionID, Event: event}); err != nil {
		that.feed.logger.Warn("dropped event", "session", that.sessionID, "event", event.Kind, "error", err)
	}
}
