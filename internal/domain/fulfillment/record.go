package fulfillment

import (
	"time"
)

// Status of a ledger row. An event with no row is unseen.
type Status string

const (
	StatusClaimed Status = "claimed"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusClaimed, StatusDone, StatusFailed:
		return true
	}
	return false
}

// Record is one row of the idempotency ledger, keyed by the processor's event id.
type Record struct {
	EventID     string
	EventType   string
	SessionID   string
	Kind        string
	Status      Status
	Attempts    int32
	ClaimedAt   time.Time
	ProcessedAt *time.Time
	Outcome     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reclaimable reports whether a new delivery may take over this row.
// Done rows are final. Failed rows are released for retry. Claimed rows are
// released once the holder has been silent for longer than the staleness window.
func (r Record) Reclaimable(staleBefore time.Time) bool {
	switch r.Status {
	case StatusFailed:
		return true
	case StatusClaimed:
		return r.ClaimedAt.Before(staleBefore)
	default:
		return false
	}
}

// Claim is the input of the ledger's atomic claim primitive.
type Claim struct {
	EventID     string
	EventType   string
	SessionID   string
	Kind        string
	Now         time.Time
	StaleBefore time.Time
}

// NewRecord builds the row written by a successful claim of an unseen event.
func (c Claim) NewRecord() Record {
	return Record{
		EventID:   c.EventID,
		EventType: c.EventType,
		SessionID: c.SessionID,
		Kind:      c.Kind,
		Status:    StatusClaimed,
		Attempts:  1,
		ClaimedAt: c.Now,
		CreatedAt: c.Now,
		UpdatedAt: c.Now,
	}
}

// Takeover applies a claim to an existing reclaimable row.
func (c Claim) Takeover(existing Record) Record {
	r := existing
	r.Status = StatusClaimed
	r.Attempts = existing.Attempts + 1
	r.ClaimedAt = c.Now
	r.ProcessedAt = nil
	r.Outcome = ""
	r.UpdatedAt = c.Now
	return r
}

// ClaimResult tells the dispatcher whether it owns the event.
// When Claimed is false, Record is the row that blocked the claim.
type ClaimResult struct {
	Claimed bool
	Record  Record
}

type Outcome string

const (
	OutcomeFulfilled Outcome = "fulfilled"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeDuplicate Outcome = "duplicate"
)
