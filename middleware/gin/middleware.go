package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/middleware"
)

// DecodeJSON decodes the incoming body with d under opt (or
// middleware.DefaultDecodeOpt when zero) and stores the typed value in the
// request context. Failures abort the chain with 400 and an ErrorPayload
// body.
func DecodeJSON[T any](d godec.Decoder[T], opt godec.DecodeOpt) gin.HandlerFunc {
	if opt == (godec.DecodeOpt{}) {
		opt = middleware.DefaultDecodeOpt()
	}
	return func(c *gin.Context) {
		out, err := godec.DecodeFrom[T](c.Request.Context(), d, godec.JSONReader(c.Request.Body), opt)
		if err != nil {
			c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), out))
		c.Next()
	}
}

// Decoded fetches the decoded body from gin.Context.
func Decoded[T any](c *gin.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request.Context())
}
