package api

import (
	"net/http"

	reqdto "checkout-fulfillment/internal/handler/dto/request"
	resdto "checkout-fulfillment/internal/handler/dto/response"
	"checkout-fulfillment/internal/handler/httperr"
	"checkout-fulfillment/internal/handler/middleware"
	"checkout-fulfillment/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Create checkout session
// @Description Create a hosted checkout session for a catalog product. The amount is taken from the server catalog.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/checkout [post]
func (h *CheckoutHandler) Create(c *gin.Context) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, httperr.CodeUnauthorized, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeInvalidRequest, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateSession(c.Request.Context(), req.ToInput(buyerID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}
