package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/creapolis/helpdesk-service/internal/events"
)

type fakeFeed struct {
	mu   sync.Mutex
	subs []*fakeFeedSub
}

func (f *fakeFeed) Publish(_ context.Context, channel string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		sub.send(channel, payload)
	}
	return nil
}

func (f *fakeFeed) Subscribe(_ context.Context, channels ...string) (FeedSubscription, error) {
	sub := &fakeFeedSub{
		channels: make(map[string]bool, len(channels)),
		out:      make(chan Message, 16),
	}
	for _, ch := range channels {
		sub.channels[ch] = true
	}
	f.mu.Lock()
	f.subs = append(f.subs, sub)
	f.mu.Unlock()
	return sub, nil
}

type fakeFeedSub struct {
	mu       sync.Mutex
	channels map[string]bool
	out      chan Message
	closed   bool
}

func (s *fakeFeedSub) send(channel string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.channels[channel] {
		return
	}
	s.out <- Message{Channel: channel, Payload: payload}
}

func (s *fakeFeedSub) Messages() <-chan Message {
	return s.out
}

func (s *fakeFeedSub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.out)
	}
	return nil
}

type recorder struct {
	mu       sync.Mutex
	ticket   []events.Event
	comments []events.Event
	closed   []error
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnTicketChanged: func(e events.Event) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.ticket = append(r.ticket, e)
		},
		OnCommentInserted: func(e events.Event) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.comments = append(r.comments, e)
		},
		OnClosed: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.closed = append(r.closed, err)
		},
	}
}

func (r *recorder) counts() (int, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticket), len(r.comments), len(r.closed)
}

func mustPublish(t *testing.T, feed Feed, channel string, event events.Event) {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	require.NoError(t, feed.Publish(context.Background(), channel, payload))
}

func TestSubscribeDeliversTicketAndCommentEvents(t *testing.T) {
	feed := &fakeFeed{}
	channel := NewChannel(feed, zap.NewNop())
	rec := &recorder{}

	sub, err := channel.Subscribe(context.Background(), "t1", rec.handlers())
	require.NoError(t, err)
	defer sub.Unsubscribe()
	assert.Equal(t, StateActive, sub.State())

	mustPublish(t, feed, TicketChannel("t1"), events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: "t1",
	})
	mustPublish(t, feed, TicketCommentsChannel("t1"), events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: "t1",
	})

	require.Eventually(t, func() bool {
		tickets, comments, _ := rec.counts()
		return tickets == 1 && comments == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSubscribeIgnoresOtherTicketsAndGarbage(t *testing.T) {
	feed := &fakeFeed{}
	channel := NewChannel(feed, zap.NewNop())
	rec := &recorder{}

	sub, err := channel.Subscribe(context.Background(), "t1", rec.handlers())
	require.NoError(t, err)
	defer sub.Unsubscribe()

	// Event for another ticket routed onto this channel name, then a
	// payload that is not JSON at all.
	mustPublish(t, feed, TicketChannel("t1"), events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: "t2",
	})
	require.NoError(t, feed.Publish(context.Background(), TicketChannel("t1"), []byte("not-json")))

	mustPublish(t, feed, TicketChannel("t1"), events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: "t1",
	})

	require.Eventually(t, func() bool {
		tickets, _, _ := rec.counts()
		return tickets == 1
	}, time.Second, 5*time.Millisecond)
	tickets, comments, closed := rec.counts()
	assert.Equal(t, 1, tickets)
	assert.Equal(t, 0, comments)
	assert.Equal(t, 0, closed)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	feed := &fakeFeed{}
	channel := NewChannel(feed, zap.NewNop())
	rec := &recorder{}

	sub, err := channel.Subscribe(context.Background(), "t1", rec.handlers())
	require.NoError(t, err)

	sub.Unsubscribe()
	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, StateUnsubscribed, sub.State())

	// No callbacks fire after teardown, including OnClosed.
	time.Sleep(20 * time.Millisecond)
	tickets, comments, closed := rec.counts()
	assert.Zero(t, tickets)
	assert.Zero(t, comments)
	assert.Zero(t, closed)
}

func TestFeedTerminationClosesSubscription(t *testing.T) {
	feed := &fakeFeed{}
	channel := NewChannel(feed, zap.NewNop())
	rec := &recorder{}

	sub, err := channel.Subscribe(context.Background(), "t1", rec.handlers())
	require.NoError(t, err)

	feed.mu.Lock()
	feedSub := feed.subs[0]
	feed.mu.Unlock()
	require.NoError(t, feedSub.Close())

	require.Eventually(t, func() bool {
		return sub.State() == StateClosed
	}, time.Second, 5*time.Millisecond)

	_, _, closed := rec.counts()
	assert.Equal(t, 1, closed)

	// Unsubscribe on a closed handle is a no-op.
	sub.Unsubscribe()
	assert.Equal(t, StateClosed, sub.State())
	_, _, closed = rec.counts()
	assert.Equal(t, 1, closed)
}

func TestContextCancelTearsDownSubscription(t *testing.T) {
	feed := &fakeFeed{}
	channel := NewChannel(feed, zap.NewNop())
	rec := &recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := channel.Subscribe(ctx, "t1", rec.handlers())
	require.NoError(t, err)

	cancel()
	require.Eventually(t, func() bool {
		return sub.State() == StateUnsubscribed
	}, time.Second, 5*time.Millisecond)

	_, _, closed := rec.counts()
	assert.Zero(t, closed, "context teardown is an unsubscribe, not a failure")
}

func TestPublisherRoutesEventsToChannels(t *testing.T) {
	feed := &fakeFeed{}
	dispatcher := events.NewInMemoryDispatcher()
	NewPublisher(feed, zap.NewNop()).Register(dispatcher)

	channel := NewChannel(feed, zap.NewNop())
	rec := &recorder{}
	sub, err := channel.Subscribe(context.Background(), "t1", rec.handlers())
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTicketStatusChanged, TicketID: "t1",
	}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTicketCommentAdded, TicketID: "t1",
	}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTicketStatusChanged, TicketID: "other",
	}))

	require.Eventually(t, func() bool {
		tickets, comments, _ := rec.counts()
		return tickets == 1 && comments == 1
	}, time.Second, 5*time.Millisecond)
}
