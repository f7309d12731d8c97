package commands

import (
	"context"
	"log/slog"

	"checkout-fulfillment/internal/domain/catalog"
	"checkout-fulfillment/internal/domain/mentoring"
	"checkout-fulfillment/internal/domain/payment"
	"checkout-fulfillment/internal/pkg/errs"
)

// MentoringHandler books the paid slot and tells the mentor about it.
// The booking is required; the notification is best effort.
type MentoringHandler struct {
	bookings BookingCreator
	notifier Notifier
	logger   *slog.Logger
}

func NewMentoringHandler(bookings BookingCreator, notifier Notifier, logger *slog.Logger) *MentoringHandler {
	return &MentoringHandler{
		bookings: bookings,
		notifier: notifier,
		logger:   logger,
	}
}

func (h *MentoringHandler) Handle(ctx context.Context, ev payment.Event) error {
	req, err := mentoring.BookingFromEvent(ev)
	if err != nil {
		return err
	}

	bookingID, err := h.bookings.CreateBooking(ctx, req)
	if err != nil {
		return errs.Wrap(err, "create mentoring booking")
	}

	if err := h.notifier.Push(ctx, mentoring.BookedNotification(req)); err != nil {
		h.logger.Warn("mentor notification failed",
			"event_id", ev.ExternalEventID,
			"booking_id", bookingID.String(),
			"mentor_id", req.MentorID,
			"error", err.Error(),
		)
	}

	h.logger.Info("mentoring booking created",
		"event_id", ev.ExternalEventID,
		"booking_id", bookingID.String(),
		"mentor_id", req.MentorID,
		"mentee_id", req.MenteeID,
		"slot_start", req.Slot.Start(),
		"slot_duration", req.Slot.Duration(),
	)
	return nil
}

func NewFulfillmentHandlers(mentoringHandler *MentoringHandler) FulfillmentHandlers {
	return FulfillmentHandlers{
		catalog.KindMentoring: mentoringHandler,
	}
}
