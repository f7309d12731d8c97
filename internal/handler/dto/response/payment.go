package response

import (
	"time"

	"checkout-fulfillment/internal/usecase/commands"
	"checkout-fulfillment/internal/usecase/queries"
)

type CheckoutResponse struct {
	RedirectURL string `json:"redirectUrl" example:"https://checkout.stripe.com/c/pay/cs_test_a1"`
}

func FromCheckoutResult(r *commands.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{RedirectURL: r.RedirectURL}
}

type WebhookAckResponse struct {
	Received bool   `json:"received"`
	EventID  string `json:"eventId"`
	Outcome  string `json:"outcome" example:"fulfilled"`
}

func FromDispatchResult(r *commands.DispatchResult) WebhookAckResponse {
	return WebhookAckResponse{
		Received: true,
		EventID:  r.EventID,
		Outcome:  string(r.Outcome),
	}
}

type AccessStatusResponse struct {
	SessionID  string            `json:"sessionId"`
	Paid       bool              `json:"paid"`
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	Metadata   map[string]string `json:"metadata"`
	Conclusive bool              `json:"conclusive"`
	Message    string            `json:"message,omitempty"`
}

func FromAccessStatusView(v *queries.AccessStatusView) AccessStatusResponse {
	md := v.Metadata
	if md == nil {
		md = map[string]string{}
	}
	return AccessStatusResponse{
		SessionID:  v.SessionID,
		Paid:       v.Paid,
		Amount:     v.Amount,
		Currency:   v.Currency,
		Metadata:   md,
		Conclusive: v.Conclusive,
		Message:    v.Message,
	}
}

type FulfillmentResponse struct {
	EventID     string     `json:"eventId"`
	EventType   string     `json:"eventType"`
	SessionID   string     `json:"sessionId"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status" example:"done"`
	Attempts    int32      `json:"attempts"`
	ClaimedAt   time.Time  `json:"claimedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	Outcome     string     `json:"outcome,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func FromFulfillmentView(v *queries.FulfillmentView) FulfillmentResponse {
	return FulfillmentResponse{
		EventID:     v.EventID,
		EventType:   v.EventType,
		SessionID:   v.SessionID,
		Kind:        v.Kind,
		Status:      v.Status,
		Attempts:    v.Attempts,
		ClaimedAt:   v.ClaimedAt,
		ProcessedAt: v.ProcessedAt,
		Outcome:     v.Outcome,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
