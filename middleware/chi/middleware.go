package chimw

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/middleware"
)

// DecodeJSON decodes the request body with d before the handler runs (or
// returns 400 with an ErrorPayload body when decoding fails). The decoded
// value is stored in the request context for Decoded. A zero opt falls back
// to middleware.DefaultDecodeOpt.
func DecodeJSON[T any](d godec.Decoder[T], opt godec.DecodeOpt) func(http.Handler) http.Handler {
	if opt == (godec.DecodeOpt{}) {
		opt = middleware.DefaultDecodeOpt()
	}
	return func(next http.Handler) http.Handler {
		return middleware.DecodeBody(d, opt, next)
	}
}

// Decoded fetches the decoded body for the current request.
func Decoded[T any](r *http.Request) (T, bool) {
	return middleware.DecodedFromContext[T](r.Context())
}

// DecodeURLParam decodes one chi route parameter with d. Route parameters
// arrive as strings, so d usually starts from dsl.String, possibly wrapped in
// Map.
func DecodeURLParam[T any](r *http.Request, key string, d godec.Decoder[T]) (T, error) {
	return godec.Decode[T](r.Context(), d, godec.String(chi.URLParam(r, key)))
}

// Handle registers a decoded-body route on r: the body decodes with d under
// the default options and the typed value is handed straight to fn.
func Handle[T any](r chi.Router, method, pattern string, d godec.Decoder[T], fn func(w http.ResponseWriter, req *http.Request, body T)) {
	h := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := Decoded[T](req)
		fn(w, req, body)
	})
	r.Method(method, pattern, DecodeJSON[T](d, godec.DecodeOpt{})(h))
}
