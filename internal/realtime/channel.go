package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/creapolis/helpdesk-service/internal/events"
)

// SubscriptionState tracks the lifecycle of one subscription handle.
type SubscriptionState int32

const (
	StateUnsubscribed SubscriptionState = iota
	StateSubscribing
	StateActive
	StateClosed
)

func (s SubscriptionState) String() string {
	switch s {
	case StateSubscribing:
		return "subscribing"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unsubscribed"
	}
}

// Handlers receive notifications for one watched ticket. OnClosed fires at
// most once, only when the channel terminates on its own; the consumer must
// resubscribe to recover.
type Handlers struct {
	OnTicketChanged   func(events.Event)
	OnCommentInserted func(events.Event)
	OnClosed          func(error)
}

// Channel is the live update entry point: it hands out per-ticket
// subscriptions over the shared change feed.
type Channel struct {
	feed   Feed
	logger *zap.Logger
}

// NewChannel builds a Channel over the given feed.
func NewChannel(feed Feed, logger *zap.Logger) *Channel {
	return &Channel{feed: feed, logger: logger}
}

// ErrChannelTerminated reports an unrecoverable feed failure.
var ErrChannelTerminated = errors.New("live update channel terminated")

// Subscribe watches one ticket for row updates and comment inserts.
// Notifications begin after the subscribe ack; there is no replay of past
// events. Cancelling ctx tears the subscription down as if Unsubscribe had
// been called.
func (c *Channel) Subscribe(ctx context.Context, ticketID string, handlers Handlers) (*Subscription, error) {
	sub := &Subscription{
		ticketID: ticketID,
		handlers: handlers,
		logger:   c.logger,
	}
	sub.state.Store(int32(StateSubscribing))

	feedSub, err := c.feed.Subscribe(ctx, TicketChannel(ticketID), TicketCommentsChannel(ticketID))
	if err != nil {
		sub.state.Store(int32(StateClosed))
		return nil, err
	}
	sub.feedSub = feedSub
	sub.state.Store(int32(StateActive))

	go sub.run(ctx)
	return sub, nil
}

// Subscription is one live watch on a ticket. Callbacks fire only while the
// subscription is Active, from a single dedicated goroutine.
type Subscription struct {
	ticketID string
	handlers Handlers
	logger   *zap.Logger
	feedSub  FeedSubscription

	state    atomic.Int32
	teardown sync.Once
}

// State returns the current lifecycle state.
func (s *Subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// TicketID returns the watched ticket id.
func (s *Subscription) TicketID() string {
	return s.ticketID
}

// Unsubscribe stops delivery. It is idempotent: repeated calls, or calls on
// an already-closed handle, do nothing.
func (s *Subscription) Unsubscribe() {
	s.teardown.Do(func() {
		s.state.Store(int32(StateUnsubscribed))
		if s.feedSub != nil {
			_ = s.feedSub.Close()
		}
	})
}

func (s *Subscription) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.Unsubscribe()
			return
		case msg, ok := <-s.feedSub.Messages():
			if !ok {
				s.terminate()
				return
			}
			s.deliver(msg)
		}
	}
}

// terminate marks the subscription Closed after an unrecoverable feed
// failure. A handle already torn down by Unsubscribe stays Unsubscribed and
// OnClosed does not fire.
func (s *Subscription) terminate() {
	s.teardown.Do(func() {
		s.state.Store(int32(StateClosed))
		if s.logger != nil {
			s.logger.Warn("live update channel terminated", zap.String("ticket_id", s.ticketID))
		}
		if s.handlers.OnClosed != nil {
			s.handlers.OnClosed(ErrChannelTerminated)
		}
	})
}

func (s *Subscription) deliver(msg Message) {
	if s.State() != StateActive {
		return
	}

	var event events.Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding malformed feed payload",
				zap.String("channel", msg.Channel), zap.Error(err))
		}
		return
	}
	if event.TicketID != s.ticketID {
		return
	}

	switch event.Type {
	case events.EventTicketCommentAdded:
		if s.handlers.OnCommentInserted != nil {
			s.handlers.OnCommentInserted(event)
		}
	default:
		if s.handlers.OnTicketChanged != nil {
			s.handlers.OnTicketChanged(event)
		}
	}
}
