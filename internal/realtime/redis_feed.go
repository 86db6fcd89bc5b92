package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/creapolis/helpdesk-service/internal/persistence"
)

// redisFeed implements Feed over Redis pub/sub. go-redis reconnects the
// pub/sub connection itself on transient failures; the message channel only
// closes when the subscription is closed for good.
type redisFeed struct {
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewRedisFeed builds a Feed backed by the shared Redis client.
func NewRedisFeed(redis *persistence.Redis, logger *zap.Logger) Feed {
	return &redisFeed{redis: redis, logger: logger}
}

func (f *redisFeed) Publish(ctx context.Context, channel string, payload []byte) error {
	return f.redis.Publish(ctx, channel, payload)
}

func (f *redisFeed) Subscribe(ctx context.Context, channels ...string) (FeedSubscription, error) {
	pubsub, err := f.redis.Subscribe(ctx, channels...)
	if err != nil {
		return nil, err
	}
	// Wait for the SUBSCRIBE ack so delivery starts from a known point.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &redisFeedSubscription{
		pubsub: pubsub,
		out:    make(chan Message, 16),
	}
	go sub.pump()
	return sub, nil
}

type redisFeedSubscription struct {
	pubsub *redis.PubSub
	out    chan Message
}

func (s *redisFeedSubscription) pump() {
	defer close(s.out)
	for msg := range s.pubsub.Channel() {
		s.out <- Message{Channel: msg.Channel, Payload: []byte(msg.Payload)}
	}
}

func (s *redisFeedSubscription) Messages() <-chan Message {
	return s.out
}

func (s *redisFeedSubscription) Close() error {
	return s.pubsub.Close()
}
