package payment

import (
	"time"

	"checkout-fulfillment/internal/domain/catalog"
)

// SessionRequest is everything the processor needs to host a checkout.
type SessionRequest struct {
	LineItem   catalog.LineItem
	SuccessURL string
	CancelURL  string
	Metadata   Metadata
}

type CreatedSession struct {
	ExternalSessionID string
	RedirectURL       string
	CreatedAt         time.Time
}

type SessionStatus string

const (
	SessionStatusOpen     SessionStatus = "open"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusExpired  SessionStatus = "expired"
)

type PaymentStatus string

const (
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusUnpaid            PaymentStatus = "unpaid"
	PaymentStatusNoPaymentRequired PaymentStatus = "no_payment_required"
)

// SessionSnapshot is the processor's view of a session at query time.
type SessionSnapshot struct {
	ExternalSessionID string
	Status            SessionStatus
	PaymentStatus     PaymentStatus
	AmountTotal       int64
	Currency          string
	Metadata          Metadata
}

// Paid only trusts the processor's own completion flags.
func (s SessionSnapshot) Paid() bool {
	return s.Status == SessionStatusComplete && s.PaymentStatus == PaymentStatusPaid
}

type AccessStatus struct {
	SessionID  string
	Paid       bool
	Amount     int64
	Currency   string
	Metadata   Metadata
	Conclusive bool
}

func AccessFromSnapshot(s SessionSnapshot) AccessStatus {
	return AccessStatus{
		SessionID:  s.ExternalSessionID,
		Paid:       s.Paid(),
		Amount:     s.AmountTotal,
		Currency:   s.Currency,
		Metadata:   s.Metadata.Clone(),
		Conclusive: true,
	}
}

// Inconclusive never grants access.
func Inconclusive(sessionID string) AccessStatus {
	return AccessStatus{
		SessionID:  sessionID,
		Paid:       false,
		Metadata:   Metadata{},
		Conclusive: false,
	}
}
