package payment

import (
	"unicode/utf8"

	"checkout-fulfillment/internal/pkg/errs"
)

// Metadata is the only channel that carries domain context from checkout to the webhook.
type Metadata map[string]string

const (
	MetaKind    = "kind"
	MetaBuyerID = "buyerId"

	// Processor limits for session metadata.
	maxMetadataKeys     = 50
	maxMetadataKeyLen   = 40
	maxMetadataValueLen = 500
)

// Merge returns a copy of m with the server-owned keys overwritten.
func (m Metadata) Merge(kind, buyerID string) Metadata {
	out := make(Metadata, len(m)+2)
	for k, v := range m {
		out[k] = v
	}
	out[MetaKind] = kind
	if buyerID != "" {
		out[MetaBuyerID] = buyerID
	} else {
		delete(out, MetaBuyerID)
	}
	return out
}

func (m Metadata) Validate() error {
	if len(m) > maxMetadataKeys {
		return errs.Mark(errs.Newf("metadata has %d keys, at most %d allowed", len(m), maxMetadataKeys), errs.ErrInvalidMetadata)
	}
	for k, v := range m {
		if k == "" || utf8.RuneCountInString(k) > maxMetadataKeyLen {
			return errs.Mark(errs.Newf("metadata key %q must be 1-%d characters", k, maxMetadataKeyLen), errs.ErrInvalidMetadata)
		}
		if utf8.RuneCountInString(v) > maxMetadataValueLen {
			return errs.Mark(errs.Newf("metadata value for %q exceeds %d characters", k, maxMetadataValueLen), errs.ErrInvalidMetadata)
		}
	}
	return nil
}

func (m Metadata) Get(key string) string {
	if m == nil {
		return ""
	}
	return m[key]
}

func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
