//go:build unit

package repository_test

import (
	"context"

	sqlc "checkout-fulfillment/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// mockDBTX is only passed through to the query mocks.
type mockDBTX struct{}

func (m *mockDBTX) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

type MockLedgerQueries struct {
	mock.Mock
}

func (m *MockLedgerQueries) ClaimFulfillmentRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimFulfillmentRecordParams) (sqlc.FulfillmentRecords, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.FulfillmentRecords), args.Error(1)
}

func (m *MockLedgerQueries) GetFulfillmentRecord(ctx context.Context, db sqlc.DBTX, eventID string) (sqlc.FulfillmentRecords, error) {
	args := m.Called(ctx, db, eventID)
	return args.Get(0).(sqlc.FulfillmentRecords), args.Error(1)
}

func (m *MockLedgerQueries) CompleteFulfillmentRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteFulfillmentRecordParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerQueries) FailFulfillmentRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.FailFulfillmentRecordParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingQueries struct {
	mock.Mock
}

func (m *MockBookingQueries) CreateMentoringBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateMentoringBookingParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockBookingQueries) GetMentoringBookingByRef(ctx context.Context, db sqlc.DBTX, idempotencyRef string) (sqlc.MentoringBookings, error) {
	args := m.Called(ctx, db, idempotencyRef)
	return args.Get(0).(sqlc.MentoringBookings), args.Error(1)
}

type MockNotificationQueries struct {
	mock.Mock
}

func (m *MockNotificationQueries) EnqueueNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.EnqueueNotificationJobParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}
