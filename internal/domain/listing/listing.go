package listing

import (
	"time"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
)

type Status string

const (
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusPendingReview   Status = "pending_review"
	StatusPublished       Status = "published"
	StatusRejected        Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAwaitingPayment, StatusPendingReview, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// Listing is a submitted job post. ChargeID and ChargeStatus are only set when
// the paid submission flow is enabled; ChargeStatus mirrors the last
// provider-reported settlement state for audit and is distinct from Status.
type Listing struct {
	ID           common.UUID `json:"id"`
	Title        string      `json:"title"`
	Company      string      `json:"company"`
	Description  string      `json:"description"`
	Salary       string      `json:"salary"`
	Contact      string      `json:"contact"`
	Whatsapp     string      `json:"whatsapp,omitempty"`
	Category     string      `json:"category,omitempty"`
	Status       Status      `json:"status"`
	ChargeID     string      `json:"charge_id,omitempty"`
	ChargeStatus string      `json:"charge_status,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// adminTransitions is the table of moderator-driven transitions. The
// awaiting_payment -> pending_review edge is owned by payment reconciliation
// and deliberately absent here.
var adminTransitions = map[Status][]Status{
	StatusPendingReview: {StatusPublished, StatusRejected},
}

// republishTransitions extends the table when re-targeting decided listings is
// allowed: published and rejected may be flipped into each other.
var republishTransitions = map[Status][]Status{
	StatusPublished: {StatusRejected},
	StatusRejected:  {StatusPublished},
}

// CanTransition reports whether an administrator may move a listing from one
// status to another. Anything outside the table is treated as a no-op event by
// the caller, never an error.
func CanTransition(from, to Status, allowRepublish bool) bool {
	for _, allowed := range adminTransitions[from] {
		if allowed == to {
			return true
		}
	}
	if allowRepublish {
		for _, allowed := range republishTransitions[from] {
			if allowed == to {
				return true
			}
		}
	}
	return false
}
