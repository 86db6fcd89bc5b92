package realtime

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/creapolis/helpdesk-service/internal/events"
)

// Publisher bridges committed domain events onto the change feed. It runs on
// the dispatcher, which invokes handlers synchronously after the store write
// returns, so a notification never precedes its durable commit.
type Publisher struct {
	feed   Feed
	logger *zap.Logger
}

// NewPublisher creates the publisher.
func NewPublisher(feed Feed, logger *zap.Logger) *Publisher {
	return &Publisher{feed: feed, logger: logger}
}

// Register subscribes the publisher to ticket events.
func (p *Publisher) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, p.publishTicketChange)
	dispatcher.Subscribe(events.EventTicketStatusChanged, p.publishTicketChange)
	dispatcher.Subscribe(events.EventTicketAssigned, p.publishTicketChange)
	dispatcher.Subscribe(events.EventTicketCommentAdded, p.publishCommentInsert)
}

func (p *Publisher) publishTicketChange(ctx context.Context, event events.Event) error {
	return p.publish(ctx, TicketChannel(event.TicketID), event)
}

func (p *Publisher) publishCommentInsert(ctx context.Context, event events.Event) error {
	return p.publish(ctx, TicketCommentsChannel(event.TicketID), event)
}

func (p *Publisher) publish(ctx context.Context, channel string, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.feed.Publish(ctx, channel, payload); err != nil {
		// Viewers fall back to manual refresh; the mutation itself stands.
		p.logger.Warn("feed publish failed",
			zap.String("channel", channel),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}
