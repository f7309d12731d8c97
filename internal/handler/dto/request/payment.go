package request

import (
	"checkout-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
)

const defaultQuantity = 1

// CreateCheckoutRequest carries no amount field; the price always comes from the catalog.
type CreateCheckoutRequest struct {
	Kind     string            `json:"kind" example:"mentoria"`
	Quantity *int64            `json:"quantity,omitempty" example:"1"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (r CreateCheckoutRequest) GetQuantity() int64 {
	if r.Quantity == nil {
		return defaultQuantity
	}
	return *r.Quantity
}

func (r CreateCheckoutRequest) ToInput(buyerID uuid.UUID) commands.CreateCheckoutInput {
	return commands.CreateCheckoutInput{
		Kind:     r.Kind,
		Quantity: r.GetQuantity(),
		Metadata: r.Metadata,
		BuyerID:  buyerID.String(),
	}
}

type AccessStatusQuery struct {
	SessionID string `form:"sessionId" binding:"required"`
}
