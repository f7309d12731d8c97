//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"checkout-fulfillment/internal/domain/mentoring"
	"checkout-fulfillment/internal/infra"
	"checkout-fulfillment/internal/infra/repository"
	sqlc "checkout-fulfillment/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bookingRequest(t *testing.T) mentoring.BookingRequest {
	t.Helper()
	start := time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC)
	slot, err := mentoring.NewTimeSlot(start, start.Add(time.Hour))
	require.NoError(t, err)
	return mentoring.BookingRequest{
		MentorID:       "m1",
		MenteeID:       "u1",
		Slot:           slot,
		SessionID:      "cs_1",
		IdempotencyRef: "evt_1",
	}
}

func TestBookingRepository_CreateBooking(t *testing.T) {
	ctx := context.Background()
	createdID := uuid.New()

	tests := []struct {
		name       string
		setup      func(q *MockBookingQueries, db sqlc.DBTX)
		wantID     uuid.UUID
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: booking created",
			setup: func(q *MockBookingQueries, db sqlc.DBTX) {
				q.On("CreateMentoringBooking", ctx, db, mock.MatchedBy(func(p sqlc.CreateMentoringBookingParams) bool {
					return p.IdempotencyRef == "evt_1" && p.MenteeID == "u1" && p.EndAt.Time.Sub(p.StartAt.Time) == time.Hour
				})).Return(createdID, nil)
			},
			wantID: createdID,
		},
		{
			name: "replay: existing booking is returned",
			setup: func(q *MockBookingQueries, db sqlc.DBTX) {
				q.On("CreateMentoringBooking", ctx, db, mock.Anything).Return(uuid.Nil, pgx.ErrNoRows)
				q.On("GetMentoringBookingByRef", ctx, db, "evt_1").Return(sqlc.MentoringBookings{ID: createdID}, nil)
			},
			wantID: createdID,
		},
		{
			name: "error: slot check violated",
			setup: func(q *MockBookingQueries, db sqlc.DBTX) {
				q.On("CreateMentoringBooking", ctx, db, mock.Anything).Return(uuid.Nil, &pgconn.PgError{Code: "23514"})
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &MockBookingQueries{}
			db := &mockDBTX{}
			tt.setup(q, db)

			id, err := repository.NewBookingRepository(q, db).CreateBooking(ctx, bookingRequest(t))

			if tt.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.expectKind))
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			q.AssertExpectations(t)
		})
	}
}

func TestNotificationOutbox_Push(t *testing.T) {
	ctx := context.Background()
	n := mentoring.Notification{RecipientID: "m1", Message: "hola", IdempotencyRef: "evt_1"}

	t.Run("enqueued", func(t *testing.T) {
		q := &MockNotificationQueries{}
		db := &mockDBTX{}
		q.On("EnqueueNotificationJob", ctx, db, sqlc.EnqueueNotificationJobParams{
			RecipientID:    "m1",
			Message:        "hola",
			IdempotencyRef: "evt_1",
		}).Return(int64(1), nil)

		assert.NoError(t, repository.NewNotificationOutbox(q, db).Push(ctx, n))
		q.AssertExpectations(t)
	})

	t.Run("already enqueued is not an error", func(t *testing.T) {
		q := &MockNotificationQueries{}
		db := &mockDBTX{}
		q.On("EnqueueNotificationJob", ctx, db, mock.Anything).Return(int64(0), nil)

		assert.NoError(t, repository.NewNotificationOutbox(q, db).Push(ctx, n))
	})

	t.Run("database error", func(t *testing.T) {
		q := &MockNotificationQueries{}
		db := &mockDBTX{}
		q.On("EnqueueNotificationJob", ctx, db, mock.Anything).Return(int64(0), assert.AnError)

		err := repository.NewNotificationOutbox(q, db).Push(ctx, n)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
