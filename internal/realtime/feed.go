package realtime

import "context"

// Message is one payload received from the change feed.
type Message struct {
	Channel string
	Payload []byte
}

// Feed is the transport for live updates: named channels with
// fire-and-forget publish and push delivery. Implementations own
// reconnection; consumers only ever see delivered messages or a closed
// message channel.
type Feed interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channels ...string) (FeedSubscription, error)
}

// FeedSubscription is one open subscription on the feed. The Messages
// channel closes when the subscription terminates, either by Close or by an
// unrecoverable transport failure.
type FeedSubscription interface {
	Messages() <-chan Message
	Close() error
}

// TicketChannel names the feed channel carrying row updates for one ticket.
func TicketChannel(ticketID string) string {
	return "ticket:" + ticketID
}

// TicketCommentsChannel names the feed channel carrying comment inserts for
// one ticket.
func TicketCommentsChannel(ticketID string) string {
	return "ticket:" + ticketID + ":comments"
}
