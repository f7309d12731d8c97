package httperr

import (
	"net/http"

	"checkout-fulfillment/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	CodeUnknownProduct          = "UnknownProduct"
	CodeInvalidQuantity         = "InvalidQuantity"
	CodeInvalidMetadata         = "InvalidMetadata"
	CodeInvalidRequest          = "InvalidRequest"
	CodeVerificationError       = "VerificationError"
	CodeTransientUpstreamError  = "TransientUpstreamError"
	CodeFulfillmentInProgress   = "FulfillmentInProgress"
	CodeFulfillmentHandlerError = "FulfillmentHandlerError"
	CodeNotFound                = "NotFound"
	CodeUnauthorized            = "Unauthorized"
	CodeForbidden               = "Forbidden"
	CodeInternal                = "InternalError"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// First match wins.
var table = []mapping{
	{errs.ErrUnknownProduct, http.StatusBadRequest, CodeUnknownProduct, "Unknown product"},
	{errs.ErrInvalidQuantity, http.StatusBadRequest, CodeInvalidQuantity, "Quantity must be at least 1"},
	{errs.ErrInvalidMetadata, http.StatusBadRequest, CodeInvalidMetadata, "Invalid metadata"},
	{errs.ErrVerificationFailed, http.StatusBadRequest, CodeVerificationError, "Invalid signature"},
	{errs.ErrFulfillmentInProgress, http.StatusConflict, CodeFulfillmentInProgress, "Event is being processed"},
	{errs.ErrFulfillmentHandler, http.StatusInternalServerError, CodeFulfillmentHandlerError, "Fulfillment failed"},
	{errs.ErrSessionNotFound, http.StatusNotFound, CodeNotFound, "Not found"},
	{errs.ErrRecordNotFound, http.StatusNotFound, CodeNotFound, "Not found"},
	{errs.ErrTransientUpstream, http.StatusBadGateway, CodeTransientUpstreamError, "Payment could not be confirmed, try again"},
}

// Classify maps an error to its HTTP status, machine code and client-safe message.
func Classify(err error) (int, string, string) {
	for _, m := range table {
		if errs.Is(err, m.target) {
			return m.status, m.code, m.message
		}
	}
	return http.StatusInternalServerError, CodeInternal, "Internal server error"
}

// Abort writes the classified response. The original error is kept on the context for logging only.
func Abort(c *gin.Context, err error) {
	status, code, msg := Classify(err)
	AbortWithError(c, status, err, code, msg, nil)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
