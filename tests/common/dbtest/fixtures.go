//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertFulfillmentRecord writes a ledger row directly, bypassing the claim primitive.
func InsertFulfillmentRecord(t *testing.T, db DBLike, eventID, status string, attempts int32, claimedAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO fulfillment_records (event_id, event_type, session_id, kind, status, attempts, claimed_at)
		 VALUES ($1, 'checkout.completed', 'cs_fixture', 'mentoria', $2, $3, $4)`,
		eventID, status, attempts, claimedAt)
	require.NoError(t, err)
}

func FulfillmentStatus(t *testing.T, db DBLike, eventID string) (status string, attempts int32) {
	t.Helper()

	err := db.QueryRow(context.Background(),
		"SELECT status, attempts FROM fulfillment_records WHERE event_id = $1", eventID).Scan(&status, &attempts)
	require.NoError(t, err)
	return status, attempts
}

func CountRows(t *testing.T, db DBLike, table, idempotencyRef string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM "+table+" WHERE idempotency_ref = $1", idempotencyRef).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}
	return nil
}
