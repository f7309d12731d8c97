// Package boltstore is a single-node fulfillment ledger on an embedded bolt file.
//
// Bolt allows one read-write transaction at a time and holds an exclusive file
// lock, so a claim executed inside db.Update is atomic across goroutines and
// across processes sharing the file.
package boltstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"checkout-fulfillment/internal/domain/fulfillment"
	"checkout-fulfillment/internal/pkg/errs"

	bolt "github.com/boltdb/bolt"
)

const bucketName = "fulfillment_records"

type Ledger struct {
	db *bolt.DB
}

// Open opens (or creates) the ledger file and ensures the bucket exists.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errs.Wrapf(err, "failed to create ledger directory %s", dir)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errs.Wrapf(err, "failed to open bolt ledger %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errs.Wrap(err, "failed to create ledger bucket")
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) Claim(ctx context.Context, c fulfillment.Claim) (fulfillment.ClaimResult, error) {
	if err := ctx.Err(); err != nil {
		return fulfillment.ClaimResult{}, err
	}

	var res fulfillment.ClaimResult
	err := l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		existing, found, err := get(b, c.EventID)
		if err != nil {
			return err
		}

		var next fulfillment.Record
		switch {
		case !found:
			next = c.NewRecord()
		case existing.Reclaimable(c.StaleBefore):
			next = c.Takeover(existing)
		default:
			res = fulfillment.ClaimResult{Claimed: false, Record: existing}
			return nil
		}

		if err := put(b, next); err != nil {
			return err
		}
		res = fulfillment.ClaimResult{Claimed: true, Record: next}
		return nil
	})
	if err != nil {
		return fulfillment.ClaimResult{}, errs.Mark(errs.Wrap(err, "failed to claim fulfillment record"), errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (l *Ledger) Complete(_ context.Context, eventID string, attempt int32, outcome string, at time.Time) error {
	return l.settle(eventID, attempt, fulfillment.StatusDone, outcome, at)
}

func (l *Ledger) Fail(_ context.Context, eventID string, attempt int32, reason string, at time.Time) error {
	return l.settle(eventID, attempt, fulfillment.StatusFailed, reason, at)
}

// settle applies only while the caller still holds the latest attempt.
func (l *Ledger) settle(eventID string, attempt int32, status fulfillment.Status, outcome string, at time.Time) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		r, found, err := get(b, eventID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !found || r.Status != fulfillment.StatusClaimed || r.Attempts != attempt {
			return errs.Mark(errs.Newf("event %s attempt %d no longer holds the claim", eventID, attempt), errs.ErrClaimLost)
		}

		processed := at
		r.Status = status
		r.ProcessedAt = &processed
		r.Outcome = outcome
		r.UpdatedAt = at
		if err := put(b, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (l *Ledger) Get(_ context.Context, eventID string) (fulfillment.Record, error) {
	var r fulfillment.Record
	err := l.db.View(func(tx *bolt.Tx) error {
		var found bool
		var err error
		r, found, err = get(tx.Bucket([]byte(bucketName)), eventID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !found {
			return errs.Mark(errs.Newf("fulfillment record %s not found", eventID), errs.ErrRecordNotFound)
		}
		return nil
	})
	if err != nil {
		return fulfillment.Record{}, err
	}
	return r, nil
}

func get(b *bolt.Bucket, eventID string) (fulfillment.Record, bool, error) {
	v := b.Get([]byte(eventID))
	if v == nil {
		return fulfillment.Record{}, false, nil
	}
	var r fulfillment.Record
	if err := json.Unmarshal(v, &r); err != nil {
		return fulfillment.Record{}, false, errs.Wrapf(err, "corrupt ledger entry %s", eventID)
	}
	return r, true, nil
}

func put(b *bolt.Bucket, r fulfillment.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return errs.Wrap(err, "failed to encode ledger entry")
	}
	return b.Put([]byte(r.EventID), data)
}
