// Package requestid assigns every request an ID for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"geotrack/pkg/requestcontext"
)

// Header is the response header carrying the request ID.
const Header = "X-Request-Id"

// Middleware reuses an inbound X-Request-Id when present, otherwise mints a
// new one, and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
