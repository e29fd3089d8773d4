// Package responsewriter wraps http.ResponseWriter so middleware can observe
// the status code and body size of a summarization response after the fact.
// The logging, metrics, and tracing middleware all share this wrapper.
package responsewriter

import "net/http"

// ResponseWriter records what the inner handler sent. The zero value is not
// usable; construct one with Wrap.
type ResponseWriter struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
}

// Wrap returns a recording wrapper around w. The status defaults to 200
// until the handler says otherwise, matching net/http's implicit behavior.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the status and forwards it. Repeated calls are
// dropped; net/http would log a superfluous-call warning otherwise.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

// Write forwards the body bytes and accumulates the count. A Write before
// WriteHeader commits status 200, same as the unwrapped writer.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// StatusCode returns the status sent to the client.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten returns the number of body bytes sent so far.
func (w *ResponseWriter) BytesWritten() int { return w.written }

// HeaderWritten reports whether a status has been committed.
func (w *ResponseWriter) HeaderWritten() bool { return w.wroteHeader }

// Unwrap exposes the inner writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
