package api

import (
	"io"
	"log/slog"
	"net/http"

	resdto "checkout-fulfillment/internal/handler/dto/response"
	"checkout-fulfillment/internal/handler/httperr"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/errs"
	"checkout-fulfillment/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	cmds         commands.FulfillmentCommands
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewWebhookHandler(cmds commands.FulfillmentCommands, cfg config.Config, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cmds:         cmds,
		maxBodyBytes: cfg.Stripe.MaxBodyBytes,
		logger:       logger,
	}
}

// @Summary Receive payment webhook
// @Description Verify a signed processor event and run its fulfillment exactly once. Non-2xx responses ask the processor to redeliver.
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "t=<unix>,v1=<hex hmac-sha256>"
// @Success 200 {object} resdto.WebhookAckResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /payments/webhook [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	// The signature covers the exact bytes, so nothing may decode the body first.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errs.As(err, &tooLarge) {
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, httperr.CodeInvalidRequest, "Payload too large", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeInvalidRequest, "Unreadable body", nil)
		return
	}

	result, err := h.cmds.Receive(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	if err != nil {
		if errs.Is(err, errs.ErrVerificationFailed) {
			h.logger.Warn("webhook signature verification failed",
				"client_ip", c.ClientIP(),
				"user_agent", c.Request.UserAgent(),
				"payload_bytes", len(payload),
				"error", err.Error(),
			)
		}
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDispatchResult(result))
}
