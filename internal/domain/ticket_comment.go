package domain

import "time"

// TicketComment is one entry in a ticket's thread. Comments are append-only
// and immutable once created; threads render in creation order.
type TicketComment struct {
	ID        string
	TicketID  string
	UserID    string
	Content   string
	CreatedAt time.Time

	Author *UserRef
}
