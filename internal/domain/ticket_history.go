package domain

import "time"

// HistoryAction tags what kind of action a history entry records. The set is
// open: new kinds can appear without a schema change, so consumers must
// match on the string and fall back for unknown values.
type HistoryAction string

const (
	HistoryActionComment HistoryAction = "comment"
	HistoryActionStatus  HistoryAction = "status"
	HistoryActionAssign  HistoryAction = "assign"
)

// TicketHistory is an immutable audit trail entry. Every successful mutation
// on a ticket or its thread records exactly one entry; timelines render
// newest-first.
type TicketHistory struct {
	ID        string
	TicketID  string
	UserID    string
	Action    HistoryAction
	Details   string
	CreatedAt time.Time

	Actor *UserRef
}
