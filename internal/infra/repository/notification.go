package repository

import (
	"context"

	"checkout-fulfillment/internal/domain/mentoring"
	"checkout-fulfillment/internal/infra"
	sqlc "checkout-fulfillment/internal/infra/sqlc/generated"
)

type NotificationWriteQueries interface {
	EnqueueNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.EnqueueNotificationJobParams) (int64, error)
}

// NotificationOutbox writes push notifications to notification_jobs for the
// notification service to drain. Used when no broker is configured.
type NotificationOutbox struct {
	queries NotificationWriteQueries
	db      sqlc.DBTX
}

func NewNotificationOutbox(queries NotificationWriteQueries, db sqlc.DBTX) *NotificationOutbox {
	return &NotificationOutbox{
		queries: queries,
		db:      db,
	}
}

// Push is a no-op when a job with the same idempotency ref already exists.
func (r *NotificationOutbox) Push(ctx context.Context, n mentoring.Notification) error {
	_, err := r.queries.EnqueueNotificationJob(ctx, r.db, sqlc.EnqueueNotificationJobParams{
		RecipientID:    n.RecipientID,
		Message:        n.Message,
		IdempotencyRef: n.IdempotencyRef,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
