package middleware

import (
	"log/slog"
	"net/http"

	"checkout-fulfillment/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public httperr.Response attached to the context.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, internalError())
	}
}

// CustomRecovery turns a panic into the standard 500 body. A panic inside a
// fulfillment handler leaves the ledger row claimed until it goes stale.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"route", c.FullPath(),
					"request_id", GetRequestID(c),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalError())
			}
		}()
		c.Next()
	}
}

func internalError() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Code = httperr.CodeInternal
	resp.Error.Message = "Internal server error"
	return resp
}
