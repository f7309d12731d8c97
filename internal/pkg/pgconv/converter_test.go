//go:build unit

package pgconv_test

import (
	"testing"
	"time"

	"checkout-fulfillment/internal/pkg/errs"
	"checkout-fulfillment/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestTimeConversion(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	in := time.Date(2026, 3, 1, 21, 0, 0, 0, jst)

	got := pgconv.TimeFromPgtype(pgconv.TimeToPgtype(in))
	assert.True(t, in.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
	assert.True(t, pgconv.TimeFromPgtype(pgtype.Timestamptz{}).IsZero())
}

func TestStringConversion(t *testing.T) {
	assert.False(t, pgconv.StringToPgtype("").Valid)
	assert.Equal(t, "x", pgconv.StringFromPgtype(pgconv.StringToPgtype("x")))
	assert.Equal(t, "", pgconv.StringFromPgtype(pgtype.Text{}))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(errs.Wrap(pgx.ErrNoRows, "lookup")))
	assert.False(t, pgconv.IsNoRows(assert.AnError))
}
