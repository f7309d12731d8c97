package api

import (
	"net/http"
	"strings"

	reqdto "checkout-fulfillment/internal/handler/dto/request"
	resdto "checkout-fulfillment/internal/handler/dto/response"
	"checkout-fulfillment/internal/handler/httperr"
	"checkout-fulfillment/internal/handler/middleware"
	"checkout-fulfillment/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PaymentStatusHandler struct {
	status       queries.AccessStatusQueries
	fulfillments queries.FulfillmentQueries
}

func NewPaymentStatusHandler(status queries.AccessStatusQueries, fulfillments queries.FulfillmentQueries) *PaymentStatusHandler {
	return &PaymentStatusHandler{status: status, fulfillments: fulfillments}
}

// @Summary Get payment status
// @Description Ask the processor whether a checkout session was paid. conclusive=false means the check failed and the client should poll again.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param sessionId query string true "Checkout session ID"
// @Success 200 {object} resdto.AccessStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/status [get]
func (h *PaymentStatusHandler) GetStatus(c *gin.Context) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, httperr.CodeUnauthorized, "Unauthorized", nil)
		return
	}

	var q reqdto.AccessStatusQuery
	if err := c.ShouldBindQuery(&q); err != nil || strings.TrimSpace(q.SessionID) == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeInvalidRequest, "sessionId is required", nil)
		return
	}

	view, err := h.status.GetStatus(c.Request.Context(), strings.TrimSpace(q.SessionID), buyerID.String())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAccessStatusView(view))
}

// @Summary Get fulfillment record
// @Description Ledger row for a processor event id
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Processor event ID"
// @Success 200 {object} resdto.FulfillmentResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/fulfillments/{eventId} [get]
func (h *PaymentStatusHandler) GetFulfillment(c *gin.Context) {
	view, err := h.fulfillments.GetByEventID(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFulfillmentView(view))
}
