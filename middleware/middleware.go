package middleware

import (
	"context"
	"net/http"

	gojson "github.com/goccy/go-json"

	godec "github.com/reoring/godec"
)

// ctxKeyDecoded is a typed context key for storing decoded request bodies.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches a decoded value to the context.
func ContextWithDecoded[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, v)
}

// DecodedFromContext retrieves a decoded value from the context.
func DecodedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(T)
	return v, ok
}

// DefaultDecodeOpt returns a recommended default for HTTP JSON boundaries.
// Duplicate keys are errors and nesting depth is capped.
func DefaultDecodeOpt() godec.DecodeOpt {
	return godec.DecodeOpt{
		RejectDuplicateKeys: true,
		MaxDepth:            128,
	}
}

// ErrorPayload shapes a decode failure for a JSON response body. DecodeError
// and SourceError keep their structured parts; anything else degrades to the
// plain message.
func ErrorPayload(err error) map[string]any {
	if de, ok := godec.AsDecodeError(err); ok {
		return map[string]any{"error": de.Error(), "expected": de.Expected}
	}
	if se, ok := godec.AsSourceError(err); ok {
		return map[string]any{"error": se.Error(), "code": se.Code}
	}
	return map[string]any{"error": err.Error()}
}

// DecodeBody decodes the request body with d before next runs. On success the
// value is stored in the request context for DecodedFromContext; on failure
// the response is 400 with an ErrorPayload body and next is never called.
func DecodeBody[T any](d godec.Decoder[T], opt godec.DecodeOpt, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out, err := godec.DecodeFrom[T](r.Context(), d, godec.JSONReader(r.Body), opt)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, ErrorPayload(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), out)))
	})
}

// WriteJSON writes v as a JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = gojson.NewEncoder(w).Encode(v)
}
