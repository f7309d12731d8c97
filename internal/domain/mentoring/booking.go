package mentoring

import (
	"strings"
	"time"

	"checkout-fulfillment/internal/domain/payment"
	"checkout-fulfillment/internal/pkg/errs"
)

const (
	MetaMentorID = "mentorId"
	MetaStartISO = "startISO"
	MetaEndISO   = "endISO"
)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, errs.New("start time must be before end time")
	}
	return TimeSlot{start: start.UTC(), end: end.UTC()}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// BookingRequest is the "create booking" contract of the mentoring service.
type BookingRequest struct {
	MentorID       string
	MenteeID       string
	Slot           TimeSlot
	SessionID      string
	IdempotencyRef string
}

// BookingFromEvent reads the booking fields the checkout carried in session metadata.
// The mentee is always the authenticated buyer stamped at checkout time.
func BookingFromEvent(ev payment.Event) (BookingRequest, error) {
	mentorID := strings.TrimSpace(ev.Metadata.Get(MetaMentorID))
	menteeID := strings.TrimSpace(ev.Metadata.Get(payment.MetaBuyerID))
	if mentorID == "" {
		return BookingRequest{}, errs.Mark(errs.New("metadata.mentorId is missing"), errs.ErrInvalidFulfillment)
	}
	if menteeID == "" {
		return BookingRequest{}, errs.Mark(errs.New("metadata.buyerId is missing"), errs.ErrInvalidFulfillment)
	}

	start, err := time.Parse(time.RFC3339, ev.Metadata.Get(MetaStartISO))
	if err != nil {
		return BookingRequest{}, errs.Mark(errs.Wrap(err, "metadata.startISO"), errs.ErrInvalidFulfillment)
	}
	end, err := time.Parse(time.RFC3339, ev.Metadata.Get(MetaEndISO))
	if err != nil {
		return BookingRequest{}, errs.Mark(errs.Wrap(err, "metadata.endISO"), errs.ErrInvalidFulfillment)
	}
	slot, err := NewTimeSlot(start, end)
	if err != nil {
		return BookingRequest{}, errs.Mark(err, errs.ErrInvalidFulfillment)
	}

	return BookingRequest{
		MentorID:       mentorID,
		MenteeID:       menteeID,
		Slot:           slot,
		SessionID:      ev.SessionID,
		IdempotencyRef: ev.ExternalEventID,
	}, nil
}

type Notification struct {
	RecipientID    string
	Message        string
	IdempotencyRef string
}

func BookedNotification(b BookingRequest) Notification {
	return Notification{
		RecipientID:    b.MentorID,
		Message:        "Nueva mentoría reservada para " + b.Slot.Start().Format("2006-01-02 15:04 UTC"),
		IdempotencyRef: b.IdempotencyRef,
	}
}
