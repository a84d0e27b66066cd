package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/middleware"
)

// DecodeJSON decodes the request body with d under opt (or
// middleware.DefaultDecodeOpt when zero), stores the typed value in the
// request context on success, and answers 400 with an ErrorPayload body when
// decoding fails.
func DecodeJSON[T any](d godec.Decoder[T], opt godec.DecodeOpt) echo.MiddlewareFunc {
	if opt == (godec.DecodeOpt{}) {
		opt = middleware.DefaultDecodeOpt()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			out, err := godec.DecodeFrom[T](c.Request().Context(), d, godec.JSONReader(c.Request().Body), opt)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), out)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// Decoded fetches the decoded body from echo.Context.
func Decoded[T any](c echo.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request().Context())
}
