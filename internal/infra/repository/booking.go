package repository

import (
	"context"

	"checkout-fulfillment/internal/domain/mentoring"
	"checkout-fulfillment/internal/infra"
	sqlc "checkout-fulfillment/internal/infra/sqlc/generated"
	"checkout-fulfillment/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateMentoringBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateMentoringBookingParams) (uuid.UUID, error)
	GetMentoringBookingByRef(ctx context.Context, db sqlc.DBTX, idempotencyRef string) (sqlc.MentoringBookings, error)
}

// BookingRepository creates mentoring bookings keyed by the fulfillment event id,
// so a redelivered event returns the booking created the first time.
type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b mentoring.BookingRequest) (uuid.UUID, error) {
	id, err := r.queries.CreateMentoringBooking(ctx, r.db, sqlc.CreateMentoringBookingParams{
		MentorID:       b.MentorID,
		MenteeID:       b.MenteeID,
		StartAt:        pgconv.TimeToPgtype(b.Slot.Start()),
		EndAt:          pgconv.TimeToPgtype(b.Slot.End()),
		SessionID:      b.SessionID,
		IdempotencyRef: b.IdempotencyRef,
	})
	if err == nil {
		return id, nil
	}
	if !pgconv.IsNoRows(err) {
		return uuid.Nil, infra.WrapRepoErr("failed to create mentoring booking", err)
	}

	// ON CONFLICT DO NOTHING returns no row on replay.
	existing, err := r.queries.GetMentoringBookingByRef(ctx, r.db, b.IdempotencyRef)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to load replayed mentoring booking", err)
	}
	return existing.ID, nil
}
