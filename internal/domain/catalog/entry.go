package catalog

import (
	"math"
	"strings"

	"checkout-fulfillment/internal/pkg/errs"
)

type Kind string

const (
	KindMentoring Kind = "mentoria"
	KindCourse    Kind = "curso"
)

func (k Kind) String() string {
	return string(k)
}

func ParseKind(s string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(s)))
}

// Entry is the only place a billable amount may originate.
type Entry struct {
	kind        Kind
	unitAmount  int64 // minor currency units
	currency    string
	displayName string
	description string
}

func NewEntry(kind Kind, unitAmount int64, currency, displayName, description string) (Entry, error) {
	if kind == "" {
		return Entry{}, errs.New("catalog entry kind is required")
	}
	if unitAmount <= 0 {
		return Entry{}, errs.Newf("catalog entry %s: unit amount must be positive", kind)
	}
	if len(currency) != 3 {
		return Entry{}, errs.Newf("catalog entry %s: currency must be an ISO 4217 code", kind)
	}
	if strings.TrimSpace(displayName) == "" {
		return Entry{}, errs.Newf("catalog entry %s: display name is required", kind)
	}
	return Entry{
		kind:        kind,
		unitAmount:  unitAmount,
		currency:    strings.ToLower(currency),
		displayName: displayName,
		description: description,
	}, nil
}

func (e Entry) Kind() Kind {
	return e.kind
}

func (e Entry) UnitAmount() int64 {
	return e.unitAmount
}

func (e Entry) Currency() string {
	return e.currency
}

func (e Entry) DisplayName() string {
	return e.displayName
}

func (e Entry) Description() string {
	return e.description
}

// LineItem is what gets billed for one checkout session.
type LineItem struct {
	Kind        Kind
	Name        string
	Description string
	Currency    string
	UnitAmount  int64
	Quantity    int64
	Amount      int64
}

func (e Entry) LineItem(quantity int64) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, errs.Mark(errs.Newf("quantity %d is below 1", quantity), errs.ErrInvalidQuantity)
	}
	if quantity > math.MaxInt64/e.unitAmount {
		return LineItem{}, errs.Mark(errs.Newf("quantity %d overflows the amount", quantity), errs.ErrInvalidQuantity)
	}
	return LineItem{
		Kind:        e.kind,
		Name:        e.displayName,
		Description: e.description,
		Currency:    e.currency,
		UnitAmount:  e.unitAmount,
		Quantity:    quantity,
		Amount:      e.unitAmount * quantity,
	}, nil
}
