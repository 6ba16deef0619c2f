package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"movehistory/pkg/requestcontext"
)

// RequestIDHeader is where an upstream proxy may supply a correlation ID.
const RequestIDHeader = "X-Request-Id"

// RequestID attaches a correlation ID to every request, minting one when the
// caller did not supply it, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
