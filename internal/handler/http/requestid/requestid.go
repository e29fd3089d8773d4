// Package requestid assigns every HTTP request an identifier that ties its
// log lines together. Clients may supply their own via the X-Request-ID
// header; anything oversized or unprintable is replaced rather than trusted.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the request and response header carrying the identifier.
const Header = "X-Request-ID"

// maxInboundLen caps client-supplied identifiers. Longer values are
// replaced with a generated one so a client cannot stuff log fields.
const maxInboundLen = 64

type ctxKey struct{}

// FromContext returns the request identifier stored in ctx, or "" when the
// request did not pass through Middleware.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// NewContext returns ctx carrying the given request identifier.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Middleware attaches a request identifier to the context and echoes it in
// the response so clients can quote it when reporting a failed summary.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !acceptable(id) {
			id = uuid.New().String()
		}

		w.Header().Set(Header, id)

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
	})
}

// acceptable reports whether a client-supplied identifier may be reused:
// non-empty, bounded, printable ASCII.
func acceptable(id string) bool {
	if id == "" || len(id) > maxInboundLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
