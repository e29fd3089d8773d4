package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"vidbrief/internal/handler/http/respond"
)

// timeoutBody 504 応答のボディ
type timeoutBody struct {
	Error string `json:"error"`
}

// Timeout bounds how long a summarization request may run. Metadata lookup
// plus generation normally finishes well inside the limit; when it does not,
// the client gets a JSON 504 and the handler's context is canceled so the
// outbound calls abort instead of burning quota on an abandoned request.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			st := &timeoutState{}
			gw := &guardedWriter{ResponseWriter: w, st: st}

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				// ハンドラがまだ書いていなければ 504 を返す
				st.mu.Lock()
				defer st.mu.Unlock()
				st.expired = true
				if !st.committed {
					respond.JSON(w, http.StatusGatewayTimeout, timeoutBody{Error: "request timeout"})
				}
			}
		})
	}
}

// timeoutState is shared between the middleware and the writer it hands to
// the handler goroutine. Exactly one side commits a response.
type timeoutState struct {
	mu        sync.Mutex
	expired   bool
	committed bool
}

// guardedWriter drops handler writes that land after the deadline response
// has gone out, so the two goroutines never interleave on the connection.
type guardedWriter struct {
	http.ResponseWriter
	st *timeoutState
}

func (g *guardedWriter) WriteHeader(status int) {
	g.st.mu.Lock()
	defer g.st.mu.Unlock()

	if g.st.expired || g.st.committed {
		return
	}
	g.st.committed = true
	g.ResponseWriter.WriteHeader(status)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.st.mu.Lock()
	defer g.st.mu.Unlock()

	if g.st.expired {
		return 0, http.ErrHandlerTimeout
	}
	if !g.st.committed {
		g.st.committed = true
		g.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return g.ResponseWriter.Write(b)
}
