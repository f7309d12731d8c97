package payment

type EventType string

const (
	EventCheckoutCompleted EventType = "checkout.completed"
	EventCheckoutPending   EventType = "checkout.pending"
	EventCheckoutFailed    EventType = "checkout.failed"
)

func (t EventType) String() string {
	return string(t)
}

// Event fields are only trustworthy once the signature over RawPayload has been verified.
type Event struct {
	ExternalEventID string
	Type            EventType
	SessionID       string
	Metadata        Metadata
	AmountTotal     int64
	Currency        string
	PaymentStatus   PaymentStatus
	RawPayload      []byte
	Signature       string
}

func (e Event) Kind() string {
	return e.Metadata.Get(MetaKind)
}
